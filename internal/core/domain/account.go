package domain

import "time"

// RoleCustomer is the role assigned to self-registered accounts. Other roles
// may exist in stored data (e.g. back-office users created out of band); the
// API itself never grants them.
const RoleCustomer = "Customer"

// Account models a bank customer and their single current-account balance.
// Balance is an int64 amount in whole currency units and is mutated only by
// the ledger engine; it never goes negative.
type Account struct {
	ID           int64     `json:"uid" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email,omitempty" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Balance      int64     `json:"balance" bson:"balance"`
	Phone        string    `json:"phone,omitempty" bson:"phone"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

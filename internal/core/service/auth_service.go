package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kodbank/kodbank-api/internal/api/metrics"
	"github.com/kodbank/kodbank-api/internal/core/domain"
	"github.com/kodbank/kodbank-api/internal/core/ports"
)

// AuthService implements registration, login, and logout.
type AuthService struct {
	ledger    ports.LedgerRepository
	accounts  ports.AccountRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration

	// Account-opening policy, injected from configuration.
	openingBalance int64
	defaultRole    string

	log zerolog.Logger
}

func NewAuthService(
	ledger ports.LedgerRepository,
	accounts ports.AccountRepository,
	sessions ports.SessionStore,
	jwtSecret string,
	tokenTTL time.Duration,
	openingBalance int64,
	defaultRole string,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	if defaultRole == "" {
		defaultRole = domain.RoleCustomer
	}
	return &AuthService{
		ledger:         ledger,
		accounts:       accounts,
		sessions:       sessions,
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
		openingBalance: openingBalance,
		defaultRole:    defaultRole,
		log:            log,
	}
}

// Register opens an account credited with the opening balance. The account
// row and its Registration ledger entry are written atomically; one never
// exists without the other.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Balance:      s.openingBalance,
		Phone:        in.Phone,
		Role:         s.defaultRole,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.ledger.CreateAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("uid", created.ID).Str("username", created.Username).Msg("account registered")
	return created, nil
}

// Login verifies the password, signs a token, and records it in the session
// store with the same TTL baked into the token's exp claim.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}

	if err := s.sessions.Save(ctx, token, account.ID, s.tokenTTL); err != nil {
		return "", nil, err
	}

	metrics.SessionsIssuedTotal.Inc()
	s.log.Info().Int64("uid", account.ID).Str("username", account.Username).Msg("login successful")
	return token, account, nil
}

// Logout removes the token from the session store. Unknown tokens are not an
// error: logging out twice, or with a stale cookie, is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return err
	}
	metrics.SessionsRevokedTotal.Inc()
	return nil
}

func (s *AuthService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"uid":      account.ID,
		"username": account.Username,
		"role":     account.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

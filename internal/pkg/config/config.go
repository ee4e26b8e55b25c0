package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string        `env:"PORT,         default=8080"`
	Env          string        `env:"ENV,          default=development"`
	LogLevel     string        `env:"LOG_LEVEL,    default=info"`
	JWTSecret    string        `env:"JWT_SECRET"`
	TokenTTL     time.Duration `env:"TOKEN_TTL,    default=1h"`
	ClientOrigin string        `env:"CLIENT_URL,   default=http://localhost:5173"`

	Bank  BankConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// BankConfig names the account-opening policy so changes stay localised
// instead of hiding as literals in the registration path.
type BankConfig struct {
	OpeningBalance int64  `env:"OPENING_BALANCE, default=100000"`
	DefaultRole    string `env:"DEFAULT_ROLE,    default=Customer"`
	AuditWorkers   int    `env:"AUDIT_WORKERS,   default=8"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=kodbank"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

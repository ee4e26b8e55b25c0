package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kodbank/kodbank-api/internal/api/handler"
	"github.com/kodbank/kodbank-api/internal/api/middleware"
	"github.com/kodbank/kodbank-api/internal/core/ports"
	"github.com/kodbank/kodbank-api/internal/core/service"
	redisdb "github.com/kodbank/kodbank-api/internal/infrastructure/db/redis"
	"github.com/kodbank/kodbank-api/internal/pkg/config"
)

// Deps carries everything the router needs. Repositories and the audit
// recorder are constructed in main so their lifecycle (index bootstrap,
// worker startup/shutdown) stays with the process, not the router.
type Deps struct {
	Mongo    *mongo.Database
	Redis    *redis.Client
	Ledger   ports.LedgerRepository
	Accounts ports.AccountRepository
	Audit    ports.AuditRecorder
	Cfg      *config.Config
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("kodbank"))
	// The SPA sends the token cookie cross-origin, so CORS must be
	// credentialed and pinned to the configured client origin.
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{d.Cfg.ClientOrigin},
		AllowCredentials: true,
	}))

	// --- Dependencies ---
	sessions := redisdb.NewSessionStore(d.Redis)
	secureCookies := d.Cfg.Env == "production"

	authService := service.NewAuthService(
		d.Ledger, d.Accounts, sessions,
		d.Cfg.JWTSecret, d.Cfg.TokenTTL,
		d.Cfg.Bank.OpeningBalance, d.Cfg.Bank.DefaultRole,
		d.Log,
	)
	ledgerService := service.NewLedgerService(d.Ledger, d.Accounts, d.Audit, d.Log)

	authHandler := handler.NewAuthHandler(authService, d.Cfg.TokenTTL, secureCookies)
	accountHandler := handler.NewAccountHandler(ledgerService)
	authMiddleware := middleware.Auth(d.Cfg.JWTSecret, sessions)

	// --- Public routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/logout", authHandler.Logout)

	// --- Authenticated routes ---
	account := e.Group("/api", authMiddleware)
	account.GET("/balance", accountHandler.Balance)
	account.POST("/deposit", accountHandler.Deposit)
	account.POST("/withdraw", accountHandler.Withdraw)
	account.GET("/transactions", accountHandler.Transactions)
	account.GET("/user-info", accountHandler.UserInfo)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)           // process liveness
	e.GET("/health/ready", readinessHandler.Readiness) // dependency readiness

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ucrmp/claims-platform/internal/api/handler"
	"github.com/ucrmp/claims-platform/internal/api/middleware"
	"github.com/ucrmp/claims-platform/internal/core/service"
	mongodb "github.com/ucrmp/claims-platform/internal/infrastructure/db/mongo"
	"github.com/ucrmp/claims-platform/internal/infrastructure/http/handlers"
	"github.com/ucrmp/claims-platform/internal/pkg/config"
)

// NewAuthRouter builds the Echo instance for the auth service: credential
// registration, login and the health probes.
func NewAuthRouter(cfg *config.Config, db *mongo.Database, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoprometheus.NewMiddleware("claims_auth"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	codec := service.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, codec, log)
	authHandler := handler.NewAuthHandler(authService)

	// --- Auth routes ---
	auth := e.Group("/api/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Observability & health probes ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, nil)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}

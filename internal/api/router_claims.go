package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ucrmp/claims-platform/internal/api/handler"
	"github.com/ucrmp/claims-platform/internal/api/middleware"
	"github.com/ucrmp/claims-platform/internal/core/domain"
	"github.com/ucrmp/claims-platform/internal/core/metadata"
	"github.com/ucrmp/claims-platform/internal/core/service"
	mongodb "github.com/ucrmp/claims-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/ucrmp/claims-platform/internal/infrastructure/db/redis"
	"github.com/ucrmp/claims-platform/internal/infrastructure/http/handlers"
)

// NewClaimRouter builds the Echo instance for the claim service. The service
// sits behind the gateway and trusts the identity headers the edge injects;
// every claim route therefore requires a complete identity, never a token.
func NewClaimRouter(db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoprometheus.NewMiddleware("claims_claim"))

	// --- Dependencies ---
	claimRepo := mongodb.NewClaimRepository(db)
	registry := metadata.NewRegistry(log)
	dedup := redisdb.NewSubmissionDedup(rdb)
	claimService := service.NewClaimService(claimRepo, registry, dedup, log)
	claimHandler := handler.NewClaimHandler(claimService)

	// --- Claim routes ---
	claims := e.Group("/api/v1/claims",
		middleware.TrustedIdentity(),
		middleware.RequireRoles(domain.RoleEmployee, domain.RoleAdmin),
	)
	claims.POST("", claimHandler.Create)
	claims.GET("", claimHandler.List)
	claims.GET("/:id", claimHandler.Get)

	// --- Observability & health probes ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}

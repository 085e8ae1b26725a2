// Package gateway assembles the edge of the platform: the single process
// clients talk to. It authenticates every request, translates tokens into
// trusted identity headers and proxies traffic to the internal services.
package gateway

import (
	"fmt"
	"net/url"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ucrmp/claims-platform/internal/api"
	"github.com/ucrmp/claims-platform/internal/api/middleware"
	"github.com/ucrmp/claims-platform/internal/core/service"
	"github.com/ucrmp/claims-platform/internal/infrastructure/http/handlers"
	"github.com/ucrmp/claims-platform/internal/pkg/config"
)

// NewRouter builds the gateway Echo instance. The edge middleware runs on
// every route: public prefixes pass through untouched, everything else must
// carry a valid bearer token before it reaches a downstream service.
func NewRouter(cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Gateway.AllowOrigins,
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, "Idempotency-Key"},
	}))
	e.Use(echoprometheus.NewMiddleware("claims_gateway"))

	codec := service.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	e.Use(middleware.Edge(codec, cfg.Gateway.PublicPaths))

	// --- Upstream proxies ---
	authProxy, err := proxyTo(cfg.Gateway.AuthURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: auth upstream: %w", err)
	}
	claimProxy, err := proxyTo(cfg.Gateway.ClaimURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: claim upstream: %w", err)
	}

	e.Group("/api/v1/auth", authProxy)
	e.Group("/api/v1/claims", claimProxy)

	// --- Observability & health probes ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handlers.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)

	return e, nil
}

// proxyTo returns a reverse-proxy middleware forwarding to a single upstream.
func proxyTo(raw string) (echo.MiddlewareFunc, error) {
	target, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	balancer := echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{
		{URL: target},
	})
	return echomiddleware.Proxy(balancer), nil
}

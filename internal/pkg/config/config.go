package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret is the process-wide symmetric signing key, shared between
	// the gateway (verification) and the auth service (issuance).
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	// AdminEmail/AdminPassword seed a bootstrap admin account on auth
	// service startup. Seeding is skipped when either is empty.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	Gateway GatewayConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type GatewayConfig struct {
	// AuthURL and ClaimURL are the downstream service bases the gateway
	// proxies to. In-cluster these are service DNS names.
	AuthURL  string `env:"AUTH_SERVICE_URL,  default=http://authsvc:8081"`
	ClaimURL string `env:"CLAIM_SERVICE_URL, default=http://claimsvc:8082"`
	// PublicPaths is the prefix allow-list that bypasses authentication.
	PublicPaths []string `env:"PUBLIC_PATHS, default=/api/v1/auth,/health,/metrics"`
	// AllowOrigins configures CORS for browser clients.
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS, default=*"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=claims_platform"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

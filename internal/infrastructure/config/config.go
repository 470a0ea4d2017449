package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// OwnerOpenID, when set, elevates that provider account to the admin
	// role on login.
	OwnerOpenID string `env:"OWNER_OPEN_ID"`

	SessionCookieName string        `env:"SESSION_COOKIE_NAME, default=groupcast_session"`
	SessionTTL        time.Duration `env:"SESSION_TTL,         default=168h"`
	AdminTokenTTL     time.Duration `env:"ADMIN_TOKEN_TTL,     default=168h"`

	// LoginRedirectURL is where the browser lands after a completed OAuth
	// callback.
	LoginRedirectURL string `env:"LOGIN_REDIRECT_URL, default=/"`

	Mongo  MongoConfig
	Redis  RedisConfig
	OAuth  OAuthConfig
	PayPal PayPalConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=groupcast"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type OAuthConfig struct {
	AuthURL      string `env:"OAUTH_AUTH_URL"`
	TokenURL     string `env:"OAUTH_TOKEN_URL"`
	ProfileURL   string `env:"OAUTH_PROFILE_URL"`
	ClientID     string `env:"OAUTH_CLIENT_ID"`
	ClientSecret string `env:"OAUTH_CLIENT_SECRET"`
	RedirectURL  string `env:"OAUTH_REDIRECT_URL"`
}

type PayPalConfig struct {
	ClientID      string `env:"PAYPAL_CLIENT_ID"`
	BusinessEmail string `env:"PAYPAL_BUSINESS_EMAIL"`
	Mode          string `env:"PAYPAL_MODE, default=sandbox"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

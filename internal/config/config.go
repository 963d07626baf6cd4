package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Email providers
const (
	EmailProviderSES = "ses"
	EmailProviderLog = "log"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Email      EmailConfig
	Redis      RedisConfig
	Catalog    CatalogConfig
	Invitation InvitationConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	Env             string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	MetricsEnabled  bool
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// JWTConfig holds JWT signing settings. Inline PEM wins over the paths.
type JWTConfig struct {
	PrivateKeyPath string
	PublicKeyPath  string
	PrivateKeyPEM  string
	PublicKeyPEM   string
	ExpirationMins int
	Issuer         string
	Audience       string
}

// EmailConfig selects and configures the mail transport
type EmailConfig struct {
	Provider         string // ses or log
	From             string
	Region           string
	ConfigurationSet string
}

// RedisConfig holds the optional idempotency store connection.
// An empty Addr keeps idempotency records in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CatalogConfig points at a ministry catalog file. Empty uses the embedded one.
type CatalogConfig struct {
	Path string
}

// InvitationConfig controls staff invitations and open registration
type InvitationConfig struct {
	TTL                 time.Duration
	AcceptURL           string
	Required            bool
	BootstrapAdminEmail string
	Church              string
	SweepInterval       time.Duration
}

// RateLimitConfig controls the per-client request limiter
type RateLimitConfig struct {
	Rate   int
	Window time.Duration
	Burst  int
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("SERVER_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			AllowedOrigins:  getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			MetricsEnabled:  getBoolEnv("METRICS_ENABLED", true),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "shepherd"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		JWT: JWTConfig{
			PrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./keys/private.pem"),
			PublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./keys/public.pem"),
			PrivateKeyPEM:  getEnv("JWT_PRIVATE_KEY", ""),
			PublicKeyPEM:   getEnv("JWT_PUBLIC_KEY", ""),
			ExpirationMins: getIntEnv("JWT_EXPIRATION_MINS", 15),
			Issuer:         getEnv("JWT_ISSUER", "shepherd.forgo.software"),
			Audience:       getEnv("JWT_AUDIENCE", ""),
		},
		Email: EmailConfig{
			Provider:         getEnv("EMAIL_PROVIDER", EmailProviderLog),
			From:             getEnv("EMAIL_FROM", ""),
			Region:           getEnv("AWS_REGION", "us-east-1"),
			ConfigurationSet: getEnv("SES_CONFIGURATION_SET", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", ""),
		},
		Invitation: InvitationConfig{
			TTL:                 getDurationEnv("INVITATION_TTL", 7*24*time.Hour),
			AcceptURL:           getEnv("INVITATION_ACCEPT_URL", "http://localhost:3000/register"),
			Required:            getBoolEnv("INVITATION_REQUIRED", true),
			BootstrapAdminEmail: getEnv("BOOTSTRAP_ADMIN_EMAIL", ""),
			Church:              getEnv("CHURCH_NAME", "Shepherd"),
			SweepInterval:       getDurationEnv("SWEEP_INTERVAL", time.Hour),
		},
		RateLimit: RateLimitConfig{
			Rate:   getIntEnv("RATE_LIMIT_RATE", 100),
			Window: getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			Burst:  getIntEnv("RATE_LIMIT_BURST", 20),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Database validation
	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	// JWT validation - critical for production
	if c.IsProduction() && c.JWT.PrivateKeyPath == "" && c.JWT.PrivateKeyPEM == "" {
		errs = append(errs, errors.New("JWT_PRIVATE_KEY or JWT_PRIVATE_KEY_PATH is required in production"))
	}
	if c.JWT.ExpirationMins <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_MINS must be positive"))
	}

	// Email validation
	switch c.Email.Provider {
	case EmailProviderSES:
		if c.Email.From == "" {
			errs = append(errs, errors.New("EMAIL_FROM is required when EMAIL_PROVIDER is ses"))
		}
		if c.Email.Region == "" {
			errs = append(errs, errors.New("AWS_REGION is required when EMAIL_PROVIDER is ses"))
		}
	case EmailProviderLog:
		if c.IsProduction() {
			errs = append(errs, errors.New("EMAIL_PROVIDER 'log' is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("EMAIL_PROVIDER must be 'ses' or 'log', got '%s'", c.Email.Provider))
	}

	// Invitation validation
	if c.Invitation.TTL <= 0 {
		errs = append(errs, errors.New("INVITATION_TTL must be positive"))
	}
	if u, err := url.Parse(c.Invitation.AcceptURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("INVITATION_ACCEPT_URL must be an absolute URL, got '%s'", c.Invitation.AcceptURL))
	}
	if c.Invitation.BootstrapAdminEmail != "" && !strings.Contains(c.Invitation.BootstrapAdminEmail, "@") {
		errs = append(errs, errors.New("BOOTSTRAP_ADMIN_EMAIL must be an email address"))
	}
	if c.Invitation.SweepInterval <= 0 {
		errs = append(errs, errors.New("SWEEP_INTERVAL must be positive"))
	}

	// Rate limit validation
	if c.RateLimit.Rate <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RATE must be positive"))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	if c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive"))
	}

	if c.Redis.DB < 0 {
		errs = append(errs, errors.New("REDIS_DB must not be negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

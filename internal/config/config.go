package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App     AppConfig
	Tickets TicketStoreConfig
	Users   UserStoreConfig
	Logger  LoggerConfig
	Auth    AuthConfig
}

// AppConfig controls process level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// TicketStoreConfig locates the JSON ticket collection file.
type TicketStoreConfig struct {
	FilePath string
}

// UserStoreConfig locates the SQLite credential database.
type UserStoreConfig struct {
	DatabasePath string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
//
// JWTSecret has no default: the process must refuse to start without an
// externally supplied signing secret.
type AuthConfig struct {
	JWTSecret       string
	TokenTTLMinutes int
	HashIterations  int
	HashAlgorithm   string
	SaltSize        int
}

// ErrMissingJWTSecret is returned when AUTH_JWT_SECRET is not set.
var ErrMissingJWTSecret = errors.New("AUTH_JWT_SECRET is required and has no default")

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "ticketsystem"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Tickets: TicketStoreConfig{
			FilePath: getEnv("TICKET_STORE_PATH", "app_data/tickets.json"),
		},
		Users: UserStoreConfig{
			DatabasePath: getEnv("USER_DB_PATH", "app_data/users.db"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:       secret,
			TokenTTLMinutes: getEnvAsInt("AUTH_TOKEN_TTL_MINUTES", 60),
			HashIterations:  getEnvAsInt("AUTH_HASH_ITERATIONS", 100000),
			HashAlgorithm:   getEnv("AUTH_HASH_ALGORITHM", "SHA256"),
			SaltSize:        getEnvAsInt("AUTH_SALT_SIZE", 32),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	// Database
	StorageDriver string
	DatabaseURL   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string

	// Security
	JWTSecret            string
	TokenTTLHours        int
	VerificationTTLHours int
	BcryptCost           int
	AllowedOrigins       []string

	// Application
	AppEnv     string
	AppPort    string
	AppBaseURL string
	LogLevel   string
	MediaRoot  string
	MediaURL   string

	// Cache
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTLSeconds int

	// Mail
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Rate Limiting
	RateLimitPerUser      int
	RateLimitPerIP        int
	RateLimitWindowSecond int
}

const defaultJWTSecret = "your_jwt_secret_minimum_32_chars_here_change_this"

func LoadConfig() (*Config, error) {
	cfg := &Config{
		StorageDriver: getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "houserent"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "houserent_db"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),

		JWTSecret:            getEnv("JWT_SECRET_KEY", ""),
		TokenTTLHours:        getEnvInt("TOKEN_TTL_HOURS", 24*30),
		VerificationTTLHours: getEnvInt("VERIFICATION_TTL_HOURS", 72),
		BcryptCost:           getEnvInt("BCRYPT_COST", 12),
		AllowedOrigins:       getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		AppEnv:     getEnv("APP_ENV", "development"),
		AppPort:    getEnv("APP_PORT", "8000"),
		AppBaseURL: strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:8000"), "/"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		MediaRoot:  getEnv("MEDIA_ROOT", "media"),
		MediaURL:   getEnv("MEDIA_URL", "/media/"),

		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 300),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@houserent.local"),

		RateLimitPerUser:      getEnvInt("RATE_LIMIT_PER_USER", 60),
		RateLimitPerIP:        getEnvInt("RATE_LIMIT_PER_IP", 300),
		RateLimitWindowSecond: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseURL == "" && c.DBPassword == "" {
			return fmt.Errorf("DB_PASSWORD or DATABASE_URL is required")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q", StorageDriverPostgres, StorageDriverMemory)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}
	if c.TokenTTLHours <= 0 {
		return fmt.Errorf("TOKEN_TTL_HOURS must be positive")
	}
	if c.VerificationTTLHours <= 0 {
		return fmt.Errorf("VERIFICATION_TTL_HOURS must be positive")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if c.StorageDriver != StorageDriverPostgres {
		return fmt.Errorf("STORAGE_DRIVER must be %q in production", StorageDriverPostgres)
	}
	if c.DatabaseURL == "" && c.DBSSLMode != "require" {
		return fmt.Errorf("DB_SSLMODE must be 'require' in production")
	}
	if c.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET_KEY must be changed from default in production")
	}
	if c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set in production")
	}
	for _, origin := range c.AllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ALLOWED_ORIGINS must not be '*' in production")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) GetDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) GetTokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func (c *Config) GetVerificationTTL() time.Duration {
	return time.Duration(c.VerificationTTLHours) * time.Hour
}

func (c *Config) GetCacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) GetRateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSecond) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

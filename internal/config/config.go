package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string `yaml:"port" env:"SERVER_PORT" validate:"required"`
		Mode           string `yaml:"mode" env:"SERVER_MODE" validate:"required,oneof=development production test"`
		StoragePath    string `yaml:"storage_path" env:"SERVER_STORAGE_PATH" validate:"required"`
		BaseURL        string `yaml:"base_url" env:"SERVER_BASE_URL"`
		MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"SERVER_MAX_UPLOAD_BYTES" validate:"gt=0"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST" validate:"required"`
		Port            string `yaml:"port" env:"DB_PORT" validate:"required"`
		User            string `yaml:"user" env:"DB_USER" validate:"required"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME" validate:"required"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" validate:"gte=0"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" validate:"gt=0"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		AccessSecret           string `yaml:"access_secret" env:"JWT_ACCESS_SECRET" validate:"required"`
		RefreshSecret          string `yaml:"refresh_secret" env:"JWT_REFRESH_SECRET" validate:"required"`
		AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
		Issuer                 string `yaml:"issuer" env:"JWT_ISSUER" validate:"required"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn error fatal"`
		Format string `yaml:"format" env:"LOG_FORMAT" validate:"oneof=json text"`
	} `yaml:"logging"`

	Seed struct {
		SuperAdminLogin    string `yaml:"super_admin_login" env:"SEED_SUPER_ADMIN_LOGIN"`
		SuperAdminPassword string `yaml:"super_admin_password" env:"SEED_SUPER_ADMIN_PASSWORD"`
		SuperAdminName     string `yaml:"super_admin_name" env:"SEED_SUPER_ADMIN_NAME"`
	} `yaml:"seed"`

	NATS struct {
		URL           string `yaml:"url" env:"NATS_URL"`
		SubjectPrefix string `yaml:"subject_prefix" env:"NATS_SUBJECT_PREFIX"`
	} `yaml:"nats"`

	Telemetry struct {
		ServiceName  string `yaml:"service_name" env:"OTEL_SERVICE_NAME"`
		OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	} `yaml:"telemetry"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The file is optional; env vars alone are enough in containers
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"
	config.Server.MaxUploadBytes = 5 << 20

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "eduadmin"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "15m"
	config.JWT.RefreshTokenExpiration = "720h"
	config.JWT.Issuer = "eduadmin"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Seed.SuperAdminLogin = "superadmin"
	config.Seed.SuperAdminName = "Super Admin"

	config.NATS.SubjectPrefix = "eduadmin"

	config.Telemetry.ServiceName = "eduadmin"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return applyEnvOverrides(config, os.LookupEnv)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return err
	}

	if config.JWT.AccessSecret == config.JWT.RefreshSecret {
		return fmt.Errorf("JWT access and refresh secrets must differ")
	}

	if _, err := ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("jwt access token expiration: %w", err)
	}

	if _, err := ParseDuration(config.JWT.RefreshTokenExpiration); err != nil {
		return fmt.Errorf("jwt refresh token expiration: %w", err)
	}

	if _, err := ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("database connection max lifetime: %w", err)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.Database.User,
		url.QueryEscape(c.Database.Password),
		net.JoinHostPort(c.Database.Host, c.Database.Port),
		c.Database.DBName,
		sslMode,
	)
}

// PublicBaseURL returns the URL prefix under which uploaded files are served.
func (c *Config) PublicBaseURL() string {
	base := c.Server.BaseURL
	if base == "" {
		base = "http://localhost:" + c.Server.Port
	}
	return strings.TrimRight(base, "/") + "/uploads"
}

// AccessTokenTTL is the lifetime of access tokens. LoadConfig has already
// validated the value; the fallback only covers hand-built configs.
func (c *Config) AccessTokenTTL() time.Duration {
	return durationOr(c.JWT.AccessTokenExpiration, 15*time.Minute)
}

// RefreshTokenTTL is the lifetime of refresh tokens.
func (c *Config) RefreshTokenTTL() time.Duration {
	return durationOr(c.JWT.RefreshTokenExpiration, 30*24*time.Hour)
}

// ConnMaxLifetimeDuration is how long a pooled connection may be reused.
func (c *Config) ConnMaxLifetimeDuration() time.Duration {
	return durationOr(c.Database.ConnMaxLifetime, time.Hour)
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	if d, err := ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

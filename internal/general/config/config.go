package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Database struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string // YAML key: "database"
	}
	RabbitMQ struct {
		Host     string
		Port     int
		User     string
		Password string
	}
	Platform struct {
		BaseURL        string
		TimeoutSeconds int
	}
	Geocoding struct {
		BaseURL        string
		Token          string
		TimeoutSeconds int
	}
	Dashboard struct {
		Port               int
		LiveRefreshSeconds int
	}
	JWT struct {
		SecretKey string `yaml:"secret_key"`
	}
}

// LoadFromFile loads config from a YAML file to a Config struct, applies
// environment overrides for secrets, applies defaults, and validates
// required fields.
func LoadFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := parseYAML(file, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides lets secrets come from the environment (loaded from
// .env by the service entrypoint) instead of the checked-in YAML file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRANSIT_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("TRANSIT_RABBITMQ_PASSWORD"); v != "" {
		cfg.RabbitMQ.Password = v
	}
	if v := os.Getenv("TRANSIT_GEOCODING_TOKEN"); v != "" {
		cfg.Geocoding.Token = v
	}
	if v := os.Getenv("TRANSIT_JWT_SECRET"); v != "" {
		cfg.JWT.SecretKey = v
	}
}

// applyDefaults sets safe defaults for some fields.
func applyDefaults(cfg *Config) {
	// Database
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}

	// RabbitMQ
	if cfg.RabbitMQ.Host == "" {
		cfg.RabbitMQ.Host = "localhost"
	}
	if cfg.RabbitMQ.Port == 0 {
		cfg.RabbitMQ.Port = 5672
	}

	// Platform gateway
	if cfg.Platform.TimeoutSeconds == 0 {
		cfg.Platform.TimeoutSeconds = 10
	}

	// Geocoding
	if cfg.Geocoding.TimeoutSeconds == 0 {
		cfg.Geocoding.TimeoutSeconds = 5
	}

	// Dashboard
	if cfg.Dashboard.Port == 0 {
		cfg.Dashboard.Port = 3004
	}
	if cfg.Dashboard.LiveRefreshSeconds == 0 {
		cfg.Dashboard.LiveRefreshSeconds = 15
	}
}

// validate checks required fields and basic ranges.
func (c *Config) validate() error {
	var problems []string

	// DB
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		problems = append(problems, "database.port must be in 1..65535")
	}
	if c.Database.User == "" {
		problems = append(problems, "database.user is required")
	}
	if c.Database.Password == "" {
		problems = append(problems, "database.password is required")
	}
	if c.Database.Name == "" {
		problems = append(problems, "database.name is required")
	}

	// RabbitMQ
	if c.RabbitMQ.Port <= 0 || c.RabbitMQ.Port > 65535 {
		problems = append(problems, "rabbitmq.port must be in 1..65535")
	}
	if c.RabbitMQ.User == "" {
		problems = append(problems, "rabbitmq.user is required")
	}
	if c.RabbitMQ.Password == "" {
		problems = append(problems, "rabbitmq.password is required")
	}

	// Platform gateway
	if c.Platform.BaseURL == "" {
		problems = append(problems, "platform.base_url is required")
	}
	if c.Platform.TimeoutSeconds <= 0 {
		problems = append(problems, "platform.timeout_seconds must be > 0")
	}

	// Geocoding
	if c.Geocoding.BaseURL == "" {
		problems = append(problems, "geocoding.base_url is required")
	}
	if c.Geocoding.TimeoutSeconds <= 0 {
		problems = append(problems, "geocoding.timeout_seconds must be > 0")
	}

	// Dashboard
	if c.Dashboard.Port <= 0 || c.Dashboard.Port > 65535 {
		problems = append(problems, "dashboard.port must be in 1..65535")
	}
	if c.Dashboard.LiveRefreshSeconds <= 0 {
		problems = append(problems, "dashboard.live_refresh_seconds must be > 0")
	}

	// JWT
	if c.JWT.SecretKey == "" {
		problems = append(problems, "jwt.secret_key is required (set TRANSIT_JWT_SECRET or jwt.secret_key)")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	DBDriver      string        `yaml:"db_driver"`
	DBPath        string        `yaml:"db_path"`
	DBHost        string        `yaml:"db_host"`
	DBPort        string        `yaml:"db_port"`
	DBUser        string        `yaml:"db_user"`
	DBPassword    string        `yaml:"db_password"`
	DBName        string        `yaml:"db_name"`
	RedisHost     string        `yaml:"redis_host"`
	RedisPort     string        `yaml:"redis_port"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	SessionSecret string        `yaml:"session_secret"`
	GinMode       string        `yaml:"gin_mode"`
	LogLevel      string        `yaml:"log_level"`
	Port          string        `yaml:"port"`
	OpenAIAPIKey  string        `yaml:"openai_api_key"`
	Seed          bool          `yaml:"seed"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		DBDriver:      DriverSQLite,
		DBPath:        "tasks.db",
		DBHost:        "localhost",
		DBPort:        "3306",
		DBUser:        "taskuser",
		DBPassword:    "taskpassword",
		DBName:        "task_board",
		CacheTTL:      time.Minute,
		SessionSecret: "default-secret-key-change-me",
		GinMode:       "debug",
		LogLevel:      "info",
		Port:          "8080",
		Seed:          true,
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.RedisHost = getEnv("REDIS_HOST", c.RedisHost)
	c.RedisPort = getEnv("REDIS_PORT", c.RedisPort)
	c.SessionSecret = getEnv("SESSION_SECRET", c.SessionSecret)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Port = getEnv("PORT", c.Port)
	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)

	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: CACHE_TTL: %v", ErrInvalid, err)
		}
		c.CacheTTL = d
	}
	if v := os.Getenv("SEED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: SEED: %v", ErrInvalid, err)
		}
		c.Seed = b
	}
	return nil
}

// Validate checks values that would otherwise fail late at startup.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("%w: unknown db driver %q", ErrInvalid, c.DBDriver)
	}
	if c.DBDriver == DriverSQLite && c.DBPath == "" {
		return fmt.Errorf("%w: db_path is required for sqlite", ErrInvalid)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: cache_ttl must not be negative", ErrInvalid)
	}
	if c.Port == "" {
		return fmt.Errorf("%w: port is required", ErrInvalid)
	}
	return nil
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	port := c.RedisPort
	if port == "" {
		port = "6379"
	}
	return c.RedisHost + ":" + port
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

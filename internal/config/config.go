package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config uses the same upper-case keys in the YAML file and the environment.
type Config struct {
	Port   string `yaml:"PORT"`
	AppEnv string `yaml:"APP_ENV"`

	DBHost        string `yaml:"DB_HOST"`
	DBUser        string `yaml:"DB_USER"`
	DBPassword    string `yaml:"DB_PASSWORD"`
	DBName        string `yaml:"DB_NAME"`
	DBPort        string `yaml:"DB_PORT"`
	DBSSLMode     string `yaml:"DB_SSLMODE"`
	DBAutoMigrate bool   `yaml:"DB_AUTO_MIGRATE"`

	RedisAddr     string `yaml:"REDIS_ADDR"`
	KafkaBroker   string `yaml:"KAFKA_BROKER"`
	OutboxEnabled bool   `yaml:"OUTBOX_ENABLED"`

	JWTSecret string `yaml:"JWT_SECRET"`

	AnnexEngine     string `yaml:"ANNEX_ENGINE"`
	WkhtmltopdfPath string `yaml:"WKHTMLTOPDF_PATH"`

	LogFile string `yaml:"LOG_FILE"`
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

func defaults() Config {
	return Config{
		Port:          "8080",
		AppEnv:        "development",
		DBHost:        "localhost",
		DBUser:        "postgres",
		DBName:        "jornada40",
		DBPort:        "5432",
		DBSSLMode:     "disable",
		DBAutoMigrate: true,
		AnnexEngine:   "auto",
	}
}

// Load reads the optional YAML file named by CONFIG_FILE and then applies
// environment overrides. Callers load .env beforehand.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.AppEnv, "APP_ENV")
	overrideString(&cfg.DBHost, "DB_HOST")
	overrideString(&cfg.DBUser, "DB_USER")
	overrideString(&cfg.DBPassword, "DB_PASSWORD")
	overrideString(&cfg.DBName, "DB_NAME")
	overrideString(&cfg.DBPort, "DB_PORT")
	overrideString(&cfg.DBSSLMode, "DB_SSLMODE")
	overrideString(&cfg.RedisAddr, "REDIS_ADDR")
	overrideString(&cfg.KafkaBroker, "KAFKA_BROKER")
	overrideString(&cfg.JWTSecret, "JWT_SECRET")
	overrideString(&cfg.AnnexEngine, "ANNEX_ENGINE")
	overrideString(&cfg.WkhtmltopdfPath, "WKHTMLTOPDF_PATH")
	overrideString(&cfg.LogFile, "LOG_FILE")

	if err := overrideBool(&cfg.DBAutoMigrate, "DB_AUTO_MIGRATE"); err != nil {
		return nil, err
	}
	if err := overrideBool(&cfg.OutboxEnabled, "OUTBOX_ENABLED"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	switch c.AnnexEngine {
	case "auto", "wkhtmltopdf", "builtin", "none":
	default:
		return fmt.Errorf("ANNEX_ENGINE %q is not one of auto, wkhtmltopdf, builtin, none", c.AnnexEngine)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func overrideBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

// Package config loads the service configuration from a YAML file with
// environment variable overrides (a .env file is honored when present).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting the service needs. YAML keys mirror the
// environment variable names so either source can set them.
type Config struct {
	HTTPPort int `yaml:"HTTP_PORT"`

	DBHost     string `yaml:"DB_HOST"`
	DBPort     int    `yaml:"DB_PORT"`
	DBUser     string `yaml:"DB_USER"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBName     string `yaml:"DB_NAME"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`

	KafkaBrokers []string `yaml:"KAFKA_BROKERS"`
	Topic        string   `yaml:"TOPIC"`
	// ConsumerGroup enables the audit consumer when non-empty.
	ConsumerGroup string `yaml:"CONSUMER_GROUP"`

	// LoginSecret signs session tokens, ResetSecret signs password-reset
	// tokens. They must differ so one token kind cannot stand in for the other.
	LoginSecret string `yaml:"LOGIN_SECRET"`
	ResetSecret string `yaml:"RESET_SECRET"`
	// TokenPrefix is required in front of the signed token in the
	// accesstoken header, e.g. "jobBoard_".
	TokenPrefix string `yaml:"TOKEN_PREFIX"`

	StorageEndpoint  string `yaml:"STORAGE_ENDPOINT"`
	StorageAccessKey string `yaml:"STORAGE_ACCESS_KEY"`
	StorageSecretKey string `yaml:"STORAGE_SECRET_KEY"`
	StorageBucket    string `yaml:"STORAGE_BUCKET"`
	StorageUseSSL    bool   `yaml:"STORAGE_USE_SSL"`

	// ExportDir is where generated application reports are written.
	ExportDir string `yaml:"EXPORT_DIR"`
}

// Load reads the YAML file at path, then applies environment overrides.
func Load(path string) (*Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:  8080,
		DBSSLMode: "disable",
		ExportDir: "exports",
	}

	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()

	if cfg.LoginSecret == "" || cfg.ResetSecret == "" {
		return nil, fmt.Errorf("LOGIN_SECRET and RESET_SECRET must be set")
	}
	if cfg.TokenPrefix == "" {
		return nil, fmt.Errorf("TOKEN_PREFIX must be set")
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v, ok := os.LookupEnv(key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setInt(&c.HTTPPort, "HTTP_PORT")
	setString(&c.DBHost, "DB_HOST")
	setInt(&c.DBPort, "DB_PORT")
	setString(&c.DBUser, "DB_USER")
	setString(&c.DBPassword, "DB_PASSWORD")
	setString(&c.DBName, "DB_NAME")
	setString(&c.DBSSLMode, "DB_SSLMODE")
	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok {
		c.KafkaBrokers = strings.Split(v, ",")
	}
	setString(&c.Topic, "TOPIC")
	setString(&c.ConsumerGroup, "CONSUMER_GROUP")
	setString(&c.LoginSecret, "LOGIN_SECRET")
	setString(&c.ResetSecret, "RESET_SECRET")
	setString(&c.TokenPrefix, "TOKEN_PREFIX")
	setString(&c.StorageEndpoint, "STORAGE_ENDPOINT")
	setString(&c.StorageAccessKey, "STORAGE_ACCESS_KEY")
	setString(&c.StorageSecretKey, "STORAGE_SECRET_KEY")
	setString(&c.StorageBucket, "STORAGE_BUCKET")
	if v, ok := os.LookupEnv("STORAGE_USE_SSL"); ok {
		c.StorageUseSSL = v == "true" || v == "1"
	}
	setString(&c.ExportDir, "EXPORT_DIR")
}

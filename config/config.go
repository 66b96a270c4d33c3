package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// MailConfig holds settings for the invitation notice mailer.
type MailConfig struct {
	// Provider selects the mailer: "ses" or "noop".
	Provider string
	// Domain is appended to account names to form recipient addresses.
	Domain      string
	FromAddress string
	FromName    string
	AWSRegion   string
	AWSKeyID    string
	AWSSecret   string
}

// Config holds all configuration for the application.
type Config struct {
	Environment string
	Port        string
	Mail        MailConfig
}

// Load reads configuration from environment variables, falling back to a
// .env file outside production. Missing values get development defaults.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		Port:        os.Getenv("PORT"),
		Mail: MailConfig{
			Provider:    os.Getenv("MAIL_PROVIDER"),
			Domain:      os.Getenv("MAIL_DOMAIN"),
			FromAddress: os.Getenv("MAIL_FROM_ADDRESS"),
			FromName:    os.Getenv("MAIL_FROM_NAME"),
			AWSRegion:   os.Getenv("AWS_REGION"),
			AWSKeyID:    os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecret:   os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = "noop"
	}
	if cfg.Mail.Domain == "" {
		cfg.Mail.Domain = "calendar.local"
	}

	return cfg, nil
}

// Package config loads process-wide settings from .env and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultIMAPServer     = "imap.gmail.com"
	defaultIMAPPort       = 993
	defaultNetworkTimeout = 30 * time.Second
	defaultHRName         = "HR Team"
)

// MailAccount holds one set of mail transport credentials.
type MailAccount struct {
	Username string
	Password string
	Server   string
	Port     int
}

// R2Config holds the object storage settings used to fetch remote resumes.
type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Enabled reports whether every R2 setting is present.
func (r R2Config) Enabled() bool {
	return r.AccountID != "" && r.Bucket != "" && r.AccessKey != "" && r.SecretKey != ""
}

// Config is read once at startup and treated as read-only afterwards.
type Config struct {
	GeminiAPIKey    string
	DeepSeekAPIKey  string
	AnthropicAPIKey string

	GeminiModel    string
	DeepSeekModel  string
	AnthropicModel string

	SMTP MailAccount
	IMAP MailAccount

	AdminUsername string
	AdminPassword string

	HRName         string
	NetworkTimeout time.Duration

	DBURL       string
	RabbitMQURL string
	R2          R2Config
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		DeepSeekAPIKey:  os.Getenv("DEEPSEEK_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		GeminiModel:     envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		DeepSeekModel:   envOr("DEEPSEEK_MODEL", "deepseek-chat"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		SMTP: MailAccount{
			Username: os.Getenv("EMAIL_USERNAME"),
			Password: os.Getenv("EMAIL_PASSWORD"),
			Server:   os.Getenv("EMAIL_SERVER"),
		},
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		HRName:        envOr("HR_NAME", defaultHRName),
		DBURL:         os.Getenv("DB_URL"),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		R2: R2Config{
			AccountID: os.Getenv("R2_ACCOUNT_ID"),
			Bucket:    os.Getenv("R2_BUCKET"),
			AccessKey: os.Getenv("R2_ACCESS_KEY"),
			SecretKey: os.Getenv("R2_SECRET_KEY"),
		},
	}

	var err error
	if cfg.SMTP.Port, err = portFromEnv("EMAIL_PORT", 0); err != nil {
		return Config{}, err
	}

	// IMAP falls back to the SMTP account unless set explicitly.
	cfg.IMAP = MailAccount{
		Username: envOr("IMAP_USERNAME", cfg.SMTP.Username),
		Password: envOr("IMAP_PASSWORD", cfg.SMTP.Password),
		Server:   envOr("IMAP_SERVER", defaultIMAPServer),
	}
	if cfg.IMAP.Port, err = portFromEnv("IMAP_PORT", defaultIMAPPort); err != nil {
		return Config{}, err
	}

	cfg.NetworkTimeout = defaultNetworkTimeout
	if raw := strings.TrimSpace(os.Getenv("HR_NETWORK_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid HR_NETWORK_TIMEOUT %q: %w", raw, err)
		}
		cfg.NetworkTimeout = d
	}

	return cfg, nil
}

// Secrets lists the values that must never appear in logs.
func (c Config) Secrets() []string {
	return []string{
		c.GeminiAPIKey,
		c.DeepSeekAPIKey,
		c.AnthropicAPIKey,
		c.SMTP.Password,
		c.IMAP.Password,
		c.AdminPassword,
		c.R2.SecretKey,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func portFromEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return port, nil
}

package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "DEEPSEEK_API_KEY", "ANTHROPIC_API_KEY",
		"EMAIL_USERNAME", "EMAIL_PASSWORD", "EMAIL_SERVER", "EMAIL_PORT",
		"IMAP_USERNAME", "IMAP_PASSWORD", "IMAP_SERVER", "IMAP_PORT",
		"ADMIN_USERNAME", "ADMIN_PASSWORD", "HR_NAME", "HR_NETWORK_TIMEOUT",
		"GEMINI_MODEL", "DEEPSEEK_MODEL", "ANTHROPIC_MODEL",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}

	if cfg.IMAP.Server != "imap.gmail.com" {
		t.Errorf("IMAP.Server = %q, want imap.gmail.com", cfg.IMAP.Server)
	}
	if cfg.IMAP.Port != 993 {
		t.Errorf("IMAP.Port = %d, want 993", cfg.IMAP.Port)
	}
	if cfg.SMTP.Port != 0 {
		t.Errorf("SMTP.Port = %d, want 0 when unset", cfg.SMTP.Port)
	}
	if cfg.NetworkTimeout != 30*time.Second {
		t.Errorf("NetworkTimeout = %v, want 30s", cfg.NetworkTimeout)
	}
	if cfg.HRName != "HR Team" {
		t.Errorf("HRName = %q, want HR Team", cfg.HRName)
	}
}

func TestFromEnvIMAPFallsBackToSMTPAccount(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMAIL_USERNAME", "hr@example.com")
	t.Setenv("EMAIL_PASSWORD", "app-password")
	t.Setenv("EMAIL_SERVER", "smtp.example.com")
	t.Setenv("EMAIL_PORT", "587")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}

	if cfg.SMTP.Port != 587 {
		t.Errorf("SMTP.Port = %d, want 587", cfg.SMTP.Port)
	}
	if cfg.IMAP.Username != "hr@example.com" || cfg.IMAP.Password != "app-password" {
		t.Errorf("IMAP account = %+v, want SMTP account values", cfg.IMAP)
	}
}

func TestFromEnvInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMAIL_PORT", "not-a-port")

	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for invalid EMAIL_PORT")
	}
}

func TestFromEnvInvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("HR_NETWORK_TIMEOUT", "soon")

	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for invalid HR_NETWORK_TIMEOUT")
	}
}

func TestSecrets(t *testing.T) {
	cfg := Config{
		GeminiAPIKey:  "g",
		SMTP:          MailAccount{Password: "p"},
		AdminPassword: "a",
	}

	found := map[string]bool{}
	for _, s := range cfg.Secrets() {
		found[s] = true
	}
	for _, want := range []string{"g", "p", "a"} {
		if !found[want] {
			t.Errorf("Secrets() missing %q", want)
		}
	}
}

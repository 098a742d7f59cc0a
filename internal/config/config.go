package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Transport string

const (
	TransportPolling Transport = "polling"
	TransportWebhook Transport = "webhook"
)

type Config struct {
	// Telegram side.
	BotToken    string
	APIBaseURL  string
	Transport   Transport
	Port        string
	PollTimeout time.Duration

	// Sink side. SheetID is deliberately allowed to be empty here: its
	// absence must surface at the first finalize attempt, not at startup.
	SheetID         string
	CredentialsFile string

	// Session storage: "memory" or "firestore".
	StorageBackend string
	GCPProjectID   string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Load reads all env vars and builds the config.
func Load() (*Config, error) {
	transport := Transport(getEnv("POBOT_TRANSPORT", "polling"))
	switch transport {
	case TransportPolling, TransportWebhook:
	default:
		return nil, fmt.Errorf("POBOT_TRANSPORT must be %q or %q, got %q",
			TransportPolling, TransportWebhook, transport)
	}

	cfg := &Config{
		BotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		APIBaseURL:  getEnv("POBOT_API_BASE_URL", "https://api.telegram.org"),
		Transport:   transport,
		Port:        getEnv("POBOT_PORT", "8080"),
		PollTimeout: time.Duration(getIntEnv("POBOT_POLL_TIMEOUT", 30)) * time.Second,

		SheetID:         os.Getenv("GOOGLE_SHEET_ID"),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		StorageBackend: getEnv("POBOT_STORAGE_BACKEND", "memory"),
		GCPProjectID:   getEnv("POBOT_GCP_PROJECT", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks only what the process cannot run without.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN must be set")
	}
	if c.PollTimeout <= 0 {
		return fmt.Errorf("POBOT_POLL_TIMEOUT must be positive")
	}
	if c.StorageBackend == "firestore" && c.GCPProjectID == "" {
		return fmt.Errorf("POBOT_GCP_PROJECT must be set for the firestore storage backend")
	}
	return nil
}

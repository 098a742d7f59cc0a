package config_test

import (
	"testing"
	"time"

	"github.com/osalazar/pobot/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Transport != config.TransportPolling {
		t.Fatalf("Transport = %q, want polling default", cfg.Transport)
	}
	if cfg.PollTimeout != 30*time.Second {
		t.Fatalf("PollTimeout = %v, want 30s default", cfg.PollTimeout)
	}
	if cfg.StorageBackend != "memory" {
		t.Fatalf("StorageBackend = %q, want memory default", cfg.StorageBackend)
	}
}

func TestLoadRequiresBotToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load should fail without TELEGRAM_BOT_TOKEN")
	}
}

func TestLoadAllowsMissingSheetID(t *testing.T) {
	// The sheet id is validated lazily at finalize time, never at startup.
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("GOOGLE_SHEET_ID", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SheetID != "" {
		t.Fatalf("SheetID = %q, want empty", cfg.SheetID)
	}
}

func TestLoadRejectsUnknownTransport(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("POBOT_TRANSPORT", "carrier-pigeon")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load should reject an unknown transport")
	}
}

func TestLoadFirestoreBackendRequiresProject(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("POBOT_STORAGE_BACKEND", "firestore")
	t.Setenv("POBOT_GCP_PROJECT", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load should require POBOT_GCP_PROJECT for firestore backend")
	}
}

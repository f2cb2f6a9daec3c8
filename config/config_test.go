package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"VARAL_CONFIG", "PORT", "STORE_BACKEND", "AIRTABLE_CARTINHAS_TABLE", "AIRTABLE_CLOUDINHO_TABLE", "REQUEST_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Expected port '3000', got '%s'", cfg.Port)
	}
	if cfg.Store != StoreAirtable {
		t.Errorf("Expected store '%s', got '%s'", StoreAirtable, cfg.Store)
	}
	if cfg.Tables.Letters != "cartinhas" {
		t.Errorf("Expected letters table 'cartinhas', got '%s'", cfg.Tables.Letters)
	}
	if cfg.Tables.Knowledge != "cloudinho_kb" {
		t.Errorf("Expected knowledge table 'cloudinho_kb', got '%s'", cfg.Tables.Knowledge)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("Expected request timeout 15s, got %v", cfg.RequestTimeout)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("VARAL_CONFIG", "")
	t.Setenv("PORT", "8081")
	t.Setenv("AIRTABLE_API_KEY", "key")
	t.Setenv("AIRTABLE_BASE_ID", "app123")
	t.Setenv("AIRTABLE_EVENTOS_TABLE", "Eventos 2025")
	t.Setenv("NOTIFY_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8081" {
		t.Errorf("Expected port '8081', got '%s'", cfg.Port)
	}
	if cfg.Tables.Events != "Eventos 2025" {
		t.Errorf("Expected events table override, got '%s'", cfg.Tables.Events)
	}
	if cfg.NotifyTimeout != 3*time.Second {
		t.Errorf("Expected notify timeout 3s, got %v", cfg.NotifyTimeout)
	}
	if w := cfg.Warnings(); len(w) != 0 {
		t.Errorf("Expected no warnings, got %v", w)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "varal.yaml")
	content := "port: \"4000\"\nstore_backend: postgres\ndb_host: localhost\ndb_name: varal\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	for _, key := range []string{"PORT", "STORE_BACKEND", "DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PORT", "DB_SSLMODE"} {
		t.Setenv(key, "")
	}
	t.Setenv("VARAL_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "4000" {
		t.Errorf("Expected port '4000', got '%s'", cfg.Port)
	}
	if cfg.Store != StorePostgres {
		t.Errorf("Expected postgres store, got '%s'", cfg.Store)
	}
	if got := cfg.Postgres.DSN(); got != "host=localhost user= password= dbname=varal port=5432 sslmode=require" {
		t.Errorf("Unexpected DSN: %s", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("VARAL_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestWarnings(t *testing.T) {
	t.Parallel()

	cfg := &Config{Store: StoreAirtable}
	if w := cfg.Warnings(); len(w) != 1 {
		t.Errorf("Expected 1 warning for missing airtable credentials, got %v", w)
	}

	cfg = &Config{Store: "mongo"}
	if w := cfg.Warnings(); len(w) != 1 {
		t.Errorf("Expected 1 warning for unknown backend, got %v", w)
	}
}

func TestLoadTimeoutUnits(t *testing.T) {
	t.Setenv("VARAL_CONFIG", "")
	t.Setenv("REQUEST_TIMEOUT", "20")
	t.Setenv("NOTIFY_TIMEOUT", "500ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.RequestTimeout != 20*time.Second {
		t.Errorf("Expected a bare number to mean seconds, got %v", cfg.RequestTimeout)
	}
	if cfg.NotifyTimeout != 500*time.Millisecond {
		t.Errorf("Expected notify timeout 500ms, got %v", cfg.NotifyTimeout)
	}
}

func TestWarningsForTinyTimeouts(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Store:          StoreAirtable,
		Airtable:       Airtable{APIKey: "key", BaseID: "app"},
		RequestTimeout: 15 * time.Nanosecond,
		NotifyTimeout:  10 * time.Second,
	}
	w := cfg.Warnings()
	if len(w) != 1 || !strings.Contains(w[0], "REQUEST_TIMEOUT") {
		t.Errorf("Expected a REQUEST_TIMEOUT warning, got %v", w)
	}
}

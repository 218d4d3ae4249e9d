package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// No config files at all.
	cfg, err := loadFrom(nil)
	if err != nil {
		t.Fatalf("loadFrom failed: %v", err)
	}

	if cfg.ClientID != "" {
		t.Errorf("ClientID = %q, want empty", cfg.ClientID)
	}
	if cfg.HasClientID() {
		t.Error("HasClientID() = true for empty client id")
	}
	if cfg.RedirectPort != 8888 {
		t.Errorf("RedirectPort = %d, want 8888", cfg.RedirectPort)
	}
	if cfg.StaleDays != 200 {
		t.Errorf("StaleDays = %d, want 200", cfg.StaleDays)
	}
	if cfg.StaleHorizon() != 200*24*time.Hour {
		t.Errorf("StaleHorizon = %v", cfg.StaleHorizon())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
client_id = "abc123"
redirect_port = 9999
stale_days = 100
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadFrom([]string{path})
	if err != nil {
		t.Fatalf("loadFrom failed: %v", err)
	}

	if cfg.ClientID != "abc123" {
		t.Errorf("ClientID = %q, want abc123", cfg.ClientID)
	}
	if cfg.RedirectPort != 9999 {
		t.Errorf("RedirectPort = %d, want 9999", cfg.RedirectPort)
	}
	if cfg.RedirectURL() != "http://127.0.0.1:9999/callback" {
		t.Errorf("RedirectURL = %q", cfg.RedirectURL())
	}
	if cfg.StaleDays != 100 {
		t.Errorf("StaleDays = %d, want 100", cfg.StaleDays)
	}
}

func TestLoadLaterFileWins(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	local := filepath.Join(dir, "local.toml")

	if err := os.WriteFile(base, []byte(`client_id = "base"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(local, []byte(`client_id = "local"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadFrom([]string{base, local})
	if err != nil {
		t.Fatalf("loadFrom failed: %v", err)
	}
	if cfg.ClientID != "local" {
		t.Errorf("ClientID = %q, want local", cfg.ClientID)
	}
}

func TestApplyDefaultsClampsBadValues(t *testing.T) {
	cfg := &Config{RedirectPort: -1, StaleDays: 0}
	cfg.applyDefaults()

	if cfg.RedirectPort != 8888 {
		t.Errorf("RedirectPort = %d, want 8888", cfg.RedirectPort)
	}
	if cfg.StaleDays != 200 {
		t.Errorf("StaleDays = %d, want 200", cfg.StaleDays)
	}
}

func TestConfigPaths(t *testing.T) {
	paths := configPaths()

	if len(paths) == 0 {
		t.Fatal("configPaths() returned empty slice")
	}
	if paths[len(paths)-1] != "config.toml" {
		t.Errorf("last config path = %q, want config.toml", paths[len(paths)-1])
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESHIS_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	// An explicitly configured but missing file is an error.
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `api_base_url: https://staging.example.com
default_acn: "0099"
voltage: 240
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SESHIS_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIBaseURL != "https://staging.example.com" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.DefaultACN != "0099" {
		t.Errorf("DefaultACN = %q", cfg.DefaultACN)
	}
	if cfg.Voltage != 240 {
		t.Errorf("Voltage = %v", cfg.Voltage)
	}
	// Untouched fields keep their defaults.
	if cfg.DefaultAccount != "16" {
		t.Errorf("DefaultAccount = %q, want default", cfg.DefaultAccount)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("api_token: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SESHIS_CONFIG", path)
	t.Setenv("SESHIS_API_TOKEN", "from-env")
	t.Setenv("SESHIS_VOLTAGE", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIToken != "from-env" {
		t.Errorf("APIToken = %q, want env to win", cfg.APIToken)
	}
	if cfg.Voltage != 120 {
		t.Errorf("Voltage = %v, want 120", cfg.Voltage)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("api_base_url: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SESHIS_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

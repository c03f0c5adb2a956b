package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/username/date-picker/internal/calendar"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
locale: en-US
availability:
  type: composite
  file: /tmp/holidays.txt
  cache_ttl: 2h
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Locale != "en-US" {
		t.Errorf("Locale = %q, want en-US", cfg.Locale)
	}
	if cfg.Availability.Type != AvailabilityComposite {
		t.Errorf("Availability.Type = %q, want composite", cfg.Availability.Type)
	}
	if cfg.Availability.APIURL != calendar.DefaultIsDayOffURL {
		t.Errorf("Availability.APIURL = %q, want default", cfg.Availability.APIURL)
	}
	if got := cfg.Availability.GetCacheTTL(); got != 2*time.Hour {
		t.Errorf("GetCacheTTL() = %v, want 2h", got)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Locale != "de-DE" {
		t.Errorf("Locale = %q, want de-DE", cfg.Locale)
	}
	if cfg.Availability.Type != AvailabilityNone {
		t.Errorf("Availability.Type = %q, want none", cfg.Availability.Type)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DATEPICKER_LOCALE", "fr-FR")

	cfg, err := Load(writeConfig(t, "locale: en-US\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Locale != "fr-FR" {
		t.Errorf("Locale = %q, want fr-FR from environment", cfg.Locale)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load() expected error for missing explicit file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"Minimal", Config{Locale: "de-DE"}, false},
		{"Missing locale", Config{}, true},
		{"File without path", Config{Locale: "de-DE", Availability: AvailabilityConfig{Type: "file"}}, true},
		{"File with path", Config{Locale: "de-DE", Availability: AvailabilityConfig{Type: "file", File: "x.txt"}}, false},
		{"Isdayoff without URL", Config{Locale: "de-DE", Availability: AvailabilityConfig{Type: "isdayoff"}}, true},
		{"Composite without file", Config{Locale: "de-DE", Availability: AvailabilityConfig{Type: "composite", APIURL: "http://x"}}, true},
		{"Unknown type", Config{Locale: "de-DE", Availability: AvailabilityConfig{Type: "ical"}}, true},
		{"Bad log level", Config{Locale: "de-DE", Log: LogConfig{Level: "loud"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetCacheTTL(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 24 * time.Hour},
		{"30m", 30 * time.Minute},
		{"soon", 24 * time.Hour},
	}

	for _, tt := range tests {
		c := AvailabilityConfig{CacheTTL: tt.value}
		if got := c.GetCacheTTL(); got != tt.want {
			t.Errorf("GetCacheTTL(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

package config

import (
	"log/slog"
	"testing"
	"time"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("CLEARGRASS_CLIENT_ID", "id")
	t.Setenv("CLEARGRASS_CLIENT_SECRET", "secret")
	t.Setenv("alfred_workflow_cache", t.TempDir())
	t.Setenv("ICON_DIR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("QINGPING_OAUTH_URL", "")
	t.Setenv("QINGPING_API_URL", "")
	t.Setenv("QINGPING_TIMEOUT", "")
}

func TestLoad_Defaults(t *testing.T) {
	setCredentials(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg.ClientID != "id" || cfg.ClientSecret != "secret" {
		t.Errorf("credentials = %q/%q, want id/secret", cfg.ClientID, cfg.ClientSecret)
	}
	if cfg.IconDir != "icons" {
		t.Errorf("IconDir = %q, want %q", cfg.IconDir, "icons")
	}
	if cfg.LogLevel != slog.LevelWarn {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelWarn)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.OAuthURL != "" || cfg.APIURL != "" {
		t.Errorf("URL overrides = %q/%q, want empty (client defaults)", cfg.OAuthURL, cfg.APIURL)
	}
}

func TestLoad_MissingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		secret string
	}{
		{name: "both missing", id: "", secret: ""},
		{name: "id missing", id: "", secret: "secret"},
		{name: "secret missing", id: "id", secret: ""},
		{name: "whitespace only", id: "   ", secret: "\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setCredentials(t)
			t.Setenv("CLEARGRASS_CLIENT_ID", tt.id)
			t.Setenv("CLEARGRASS_CLIENT_SECRET", tt.secret)

			_, err := Load()
			if err == nil {
				t.Fatal("Load() error = nil, want non-nil for missing credentials")
			}
		})
	}
}

func TestLoad_LogLevels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  slog.Level
	}{
		{name: "debug", level: "debug", want: slog.LevelDebug},
		{name: "info", level: "info", want: slog.LevelInfo},
		{name: "warn", level: "warn", want: slog.LevelWarn},
		{name: "warning alias", level: "warning", want: slog.LevelWarn},
		{name: "error", level: "error", want: slog.LevelError},
		{name: "mixed case", level: "DeBuG", want: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setCredentials(t)
			t.Setenv("LOG_LEVEL", tt.level)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v, want nil", err)
			}
			if cfg.LogLevel != tt.want {
				t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, tt.want)
			}
		})
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	setCredentials(t)
	t.Setenv("LOG_LEVEL", "verbose")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want non-nil for invalid LOG_LEVEL")
	}
}

func TestLoad_Timeout(t *testing.T) {
	setCredentials(t)
	t.Setenv("QINGPING_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.Timeout)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
	}{
		{name: "not a duration", timeout: "fast"},
		{name: "zero", timeout: "0s"},
		{name: "negative", timeout: "-5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setCredentials(t)
			t.Setenv("QINGPING_TIMEOUT", tt.timeout)

			if _, err := Load(); err == nil {
				t.Fatal("Load() error = nil, want non-nil")
			}
		})
	}
}

func TestLoad_URLOverrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("QINGPING_OAUTH_URL", "http://127.0.0.1:9000")
	t.Setenv("QINGPING_API_URL", "http://127.0.0.1:9001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg.OAuthURL != "http://127.0.0.1:9000" {
		t.Errorf("OAuthURL = %q, want override", cfg.OAuthURL)
	}
	if cfg.APIURL != "http://127.0.0.1:9001" {
		t.Errorf("APIURL = %q, want override", cfg.APIURL)
	}
}

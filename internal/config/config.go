// Package config loads workflow configuration from the environment. Alfred
// injects workflow variables and its own alfred_* variables into the process
// environment; a .env file is honored for development outside Alfred.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ClientID     string
	ClientSecret string

	// CacheDir holds the token cache and the log file. Defaults to the
	// directory Alfred assigns via alfred_workflow_cache.
	CacheDir string
	// IconDir is the directory the icon paths in feedback items are
	// relative to. Defaults to the workflow directory itself.
	IconDir string

	LogLevel slog.Level

	// OAuthURL and APIURL override the vendor hosts, for tests and
	// debugging. Empty means the defaults built into the client.
	OAuthURL string
	APIURL   string

	// Timeout bounds one workflow invocation end to end. Alfred discards
	// output that arrives after its own timeout anyway.
	Timeout time.Duration
}

// Load reads configuration from the environment, after a best-effort .env
// load. Missing credentials are an error; the caller renders it as a
// configuration-error row rather than crashing.
func Load() (Config, error) {
	// Inside Alfred there is no .env file; ignore the miss.
	_ = godotenv.Load()

	clientID := strings.TrimSpace(os.Getenv("CLEARGRASS_CLIENT_ID"))
	clientSecret := strings.TrimSpace(os.Getenv("CLEARGRASS_CLIENT_SECRET"))
	if clientID == "" || clientSecret == "" {
		return Config{}, fmt.Errorf("CLEARGRASS_CLIENT_ID and CLEARGRASS_CLIENT_SECRET must be set in the workflow configuration")
	}

	cacheDir := strings.TrimSpace(os.Getenv("alfred_workflow_cache"))
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "alfred-qingping-monitor")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Config{}, fmt.Errorf("create cache dir %q: %w", cacheDir, err)
	}

	// Alfred runs the binary with the workflow directory as cwd, so a
	// relative icon dir resolves to the bundled icons.
	iconDir := strings.TrimSpace(os.Getenv("ICON_DIR"))
	if iconDir == "" {
		iconDir = "icons"
	}

	logLevelStr := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "warn"
	}
	level, err := parseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}

	timeoutStr := strings.TrimSpace(os.Getenv("QINGPING_TIMEOUT"))
	if timeoutStr == "" {
		timeoutStr = "10s"
	}
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid QINGPING_TIMEOUT %q: %w", timeoutStr, err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("QINGPING_TIMEOUT must be positive, got %q", timeoutStr)
	}

	return Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		CacheDir:     cacheDir,
		IconDir:      iconDir,
		LogLevel:     level,
		OAuthURL:     strings.TrimSpace(os.Getenv("QINGPING_OAUTH_URL")),
		APIURL:       strings.TrimSpace(os.Getenv("QINGPING_API_URL")),
		Timeout:      timeout,
	}, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

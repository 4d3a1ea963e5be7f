// Command qingping is the script-filter backend of the Alfred workflow. Alfred
// invokes it with the user's query as arguments and renders the JSON document
// it prints to stdout.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Tan4ek/alfred-qingping-monitor/internal/alfred"
	"github.com/Tan4ek/alfred-qingping-monitor/internal/app"
	"github.com/Tan4ek/alfred-qingping-monitor/internal/config"
	"github.com/Tan4ek/alfred-qingping-monitor/internal/logging"
	"github.com/Tan4ek/alfred-qingping-monitor/internal/qingping"
	"github.com/Tan4ek/alfred-qingping-monitor/internal/tokencache"
)

func main() {
	query := strings.Join(os.Args[1:], " ")

	cfg, err := config.Load()
	if err != nil {
		// No stack to crash: Alfred shows whatever we print, so a config
		// problem becomes a row telling the user what to set.
		emit(app.ConfigError("icons", err))
		return
	}

	logger, closeLog := logging.New(cfg.LogLevel, cfg.CacheDir)
	defer func() { _ = closeLog() }()

	var tokens qingping.TokenStore
	store, err := tokencache.Open(filepath.Join(cfg.CacheDir, "token-cache.db"))
	if err != nil {
		logger.Warn("token cache unavailable, using in-memory store", "error", err)
		tokens = tokencache.NewMemory()
	} else {
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("close token cache", "error", err)
			}
		}()
		tokens = store
	}

	client := qingping.NewClient(qingping.Options{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		OAuthURL:     cfg.OAuthURL,
		APIURL:       cfg.APIURL,
		Tokens:       tokens,
		Logger:       logger,
		Timeout:      cfg.Timeout,
	})

	a := &app.App{
		Client:  client,
		IconDir: cfg.IconDir,
		Logger:  logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	logger.Debug("dispatching", "query", query)
	emit(a.Run(ctx, query))
}

// emit prints the feedback document. An encoding failure here has no user
// channel left, so the process just exits non-zero for Alfred's debugger.
func emit(fb alfred.Feedback) {
	if err := fb.Write(os.Stdout); err != nil {
		os.Exit(1)
	}
}

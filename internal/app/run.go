// Package app is the command dispatcher: it takes the raw query Alfred passes
// in and always produces a feedback document, converting every failure into a
// single user-visible row. Nothing escapes its boundary.
package app

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"time"

	"github.com/Tan4ek/alfred-qingping-monitor/internal/alfred"
	"github.com/Tan4ek/alfred-qingping-monitor/internal/command"
	"github.com/Tan4ek/alfred-qingping-monitor/internal/format"
	"github.com/Tan4ek/alfred-qingping-monitor/internal/qingping"
)

// Client is the slice of the API client the dispatcher needs; tests substitute
// a fake.
type Client interface {
	ListDevices(ctx context.Context) ([]qingping.Device, error)
	DeviceReadings(ctx context.Context, mac string) (qingping.Device, []qingping.Reading, error)
	SetReportInterval(ctx context.Context, mac string, minutes int) error
}

type App struct {
	Client  Client
	IconDir string
	Logger  *slog.Logger
	// Now is the time source for recency rendering; nil means time.Now.
	Now func() time.Time
}

// Run dispatches one query and returns the feedback to print. It never
// returns an error; failures become an error row.
func (a *App) Run(ctx context.Context, query string) alfred.Feedback {
	cmd, err := command.Parse(query)
	if err != nil {
		a.logger().Debug("query rejected", "query", query, "error", err)
		return a.errorFeedback("Invalid input", err.Error())
	}

	switch c := cmd.(type) {
	case command.ListDevices:
		devices, err := a.Client.ListDevices(ctx)
		if err != nil {
			return a.clientError(err)
		}
		return alfred.Feedback{Items: format.Devices(devices, a.IconDir)}

	case command.ShowReadings:
		device, readings, err := a.Client.DeviceReadings(ctx, c.MAC)
		if err != nil {
			return a.clientError(err)
		}
		return alfred.Feedback{Items: format.Readings(device, readings, a.IconDir, a.now())}

	case command.ListIntervals:
		return alfred.Feedback{Items: format.Intervals(c.MAC)}

	case command.SetInterval:
		if err := a.Client.SetReportInterval(ctx, c.MAC, c.Minutes); err != nil {
			return a.clientError(err)
		}
		return alfred.Feedback{Items: format.IntervalUpdated(c.MAC, c.Minutes)}
	}

	// Unreachable while command.Parse stays exhaustive.
	return a.errorFeedback("Error", "unrecognized command")
}

// ConfigError renders a missing/broken configuration as feedback, for main to
// use before the dispatcher exists.
func ConfigError(iconDir string, err error) alfred.Feedback {
	return alfred.Feedback{Items: []alfred.Item{{
		Title:    "Configuration error",
		Subtitle: err.Error(),
		Valid:    alfred.Invalid(),
		Icon:     &alfred.Icon{Path: path.Join(iconDir, "error.png")},
	}}}
}

func (a *App) clientError(err error) alfred.Feedback {
	a.logger().Error("api call failed", "error", err)

	var apiErr *qingping.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case qingping.ErrorKindAuth:
			return a.errorFeedback("Not authorized", "Check your Qingping credentials: "+apiErr.Message)
		case qingping.ErrorKindRateLimit:
			return a.errorFeedback("Rate limited by Qingping", "Try again in a minute")
		case qingping.ErrorKindNetwork:
			return a.errorFeedback("Network problem", apiErr.Message)
		case qingping.ErrorKindValidation:
			return a.errorFeedback("Invalid input", apiErr.Message)
		}
	}
	return a.errorFeedback("Error", err.Error())
}

func (a *App) errorFeedback(title, subtitle string) alfred.Feedback {
	return alfred.Feedback{Items: []alfred.Item{{
		Title:    title,
		Subtitle: subtitle,
		Valid:    alfred.Invalid(),
		Icon:     &alfred.Icon{Path: path.Join(a.IconDir, "error.png")},
	}}}
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

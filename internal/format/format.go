// Package format turns API data into Alfred rows. Everything here is pure:
// inputs in, items out, no I/O.
package format

import (
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/Tan4ek/alfred-qingping-monitor/internal/alfred"
	"github.com/Tan4ek/alfred-qingping-monitor/internal/qingping"
)

// priority fixes the display order of measurements regardless of input order.
var priority = []qingping.Kind{
	qingping.KindCO2,
	qingping.KindPM25,
	qingping.KindTVOC,
	qingping.KindTemperature,
	qingping.KindHumidity,
}

// IntervalPresets are the reporting intervals offered when the user has not
// typed a minute value, in minutes.
var IntervalPresets = []int{1, 5, 10, 60}

// Readings renders one row per measurement, ordered by the fixed priority.
// Kinds missing from the input are simply absent. An empty input yields an
// empty slice, never a placeholder row.
func Readings(device qingping.Device, readings []qingping.Reading, iconDir string, now time.Time) []alfred.Item {
	byKind := make(map[qingping.Kind]qingping.Reading, len(readings))
	for _, r := range readings {
		byKind[r.Kind] = r
	}
	items := make([]alfred.Item, 0, len(byKind))
	for _, k := range priority {
		r, ok := byKind[k]
		if !ok {
			continue
		}
		value := formatValue(r.Value)
		items = append(items, alfred.Item{
			Title:    fmt.Sprintf("%s %s %s", k.Label(), value, r.Unit),
			Subtitle: fmt.Sprintf("%s, %s", deviceName(device), TimeAgo(now, r.Time)),
			Arg:      value,
			Icon:     &alfred.Icon{Path: path.Join(iconDir, levelIcon(k, r.Value))},
		})
	}
	return items
}

// Devices renders the device list: one row per device carrying its MAC as the
// argument, so selecting a device re-invokes the workflow with it. An empty
// account yields a single non-actionable row.
func Devices(devices []qingping.Device, iconDir string) []alfred.Item {
	if len(devices) == 0 {
		return []alfred.Item{{
			Title:    "No devices found",
			Subtitle: "Check your device list in the Qingping app",
			Valid:    alfred.Invalid(),
			Icon:     &alfred.Icon{Path: path.Join(iconDir, "error.png")},
		}}
	}
	items := make([]alfred.Item, 0, len(devices))
	for _, d := range devices {
		items = append(items, alfred.Item{
			Title:    deviceName(d),
			Subtitle: fmt.Sprintf("MAC: %s, reports every %s", d.MAC, humanInterval(d.ReportInterval)),
			Arg:      d.MAC,
		})
	}
	return items
}

// Intervals renders the reporting-interval presets for a device. Each row's
// argument is a complete "set interval" query, so selecting one re-invokes the
// workflow with it.
func Intervals(mac string) []alfred.Item {
	items := make([]alfred.Item, 0, len(IntervalPresets))
	for _, minutes := range IntervalPresets {
		items = append(items, alfred.Item{
			Title:    fmt.Sprintf("Report every %s", minuteLabel(minutes)),
			Subtitle: fmt.Sprintf("Set collection and reporting intervals for device %s", mac),
			Arg:      fmt.Sprintf("%s interval %d", mac, minutes),
		})
	}
	return items
}

// IntervalUpdated renders the confirmation row after a successful settings
// change.
func IntervalUpdated(mac string, minutes int) []alfred.Item {
	return []alfred.Item{{
		Title:    "Settings updated",
		Subtitle: fmt.Sprintf("Device %s now reports every %s", mac, minuteLabel(minutes)),
		Arg:      mac,
	}}
}

// TimeAgo renders how long ago t was, relative to now. Timestamps in the
// future (device clock ahead of ours) read as just updated.
func TimeAgo(now, t time.Time) string {
	if t.IsZero() {
		return "time unknown"
	}
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return "just updated"
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}

func deviceName(d qingping.Device) string {
	if d.Name == "" {
		return "Unnamed device"
	}
	return d.Name
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func minuteLabel(minutes int) string {
	if minutes == 1 {
		return "1 minute"
	}
	if minutes%60 == 0 {
		hours := minutes / 60
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d minutes", minutes)
}

func humanInterval(d time.Duration) string {
	seconds := int(d.Seconds())
	switch {
	case seconds <= 0:
		return "unknown interval"
	case seconds < 60:
		return fmt.Sprintf("%d seconds", seconds)
	case seconds < 3600:
		minutes, rest := seconds/60, seconds%60
		if rest != 0 {
			return fmt.Sprintf("%d minute(s) %d second(s)", minutes, rest)
		}
		return fmt.Sprintf("%d minute(s)", minutes)
	default:
		hours, rest := seconds/3600, (seconds%3600)/60
		if rest != 0 {
			return fmt.Sprintf("%d hour(s) %d minute(s)", hours, rest)
		}
		return fmt.Sprintf("%d hour(s)", hours)
	}
}

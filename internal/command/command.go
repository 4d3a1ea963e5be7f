// Package command parses the free-text query Alfred hands the workflow into a
// tagged command value, so the dispatcher can switch over a closed set of
// cases instead of inspecting strings.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Tan4ek/alfred-qingping-monitor/internal/qingping"
)

type Command interface {
	isCommand()
}

// ListDevices shows every device on the account. Produced by an empty query.
type ListDevices struct{}

// ShowReadings shows the latest measurements of one device.
type ShowReadings struct {
	MAC string
}

// ListIntervals shows the reporting-interval presets for one device.
type ListIntervals struct {
	MAC string
}

// SetInterval changes a device's reporting interval.
type SetInterval struct {
	MAC     string
	Minutes int
}

func (ListDevices) isCommand()   {}
func (ShowReadings) isCommand()  {}
func (ListIntervals) isCommand() {}
func (SetInterval) isCommand()   {}

// Parse maps a query string onto a Command:
//
//	""                        -> ListDevices
//	"<mac>"                   -> ShowReadings
//	"<mac> interval"          -> ListIntervals
//	"<mac> interval <n>"      -> SetInterval
//
// MACs are normalized (upper-case, separators stripped). Range checking of the
// minute value stays in the API client; Parse only requires an integer.
func Parse(query string) (Command, error) {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ListDevices{}, nil
	}

	mac := qingping.NormalizeMAC(fields[0])
	if !validMAC(mac) {
		return nil, fmt.Errorf("%q is not a device MAC address", fields[0])
	}

	switch {
	case len(fields) == 1:
		return ShowReadings{MAC: mac}, nil
	case fields[1] != "interval":
		return nil, fmt.Errorf("unknown action %q, expected \"interval\"", fields[1])
	case len(fields) == 2:
		return ListIntervals{MAC: mac}, nil
	case len(fields) == 3:
		minutes, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("interval %q is not a number of minutes", fields[2])
		}
		return SetInterval{MAC: mac, Minutes: minutes}, nil
	default:
		return nil, fmt.Errorf("too many arguments after %q", "interval")
	}
}

// validMAC accepts a normalized 12-digit hex MAC.
func validMAC(mac string) bool {
	if len(mac) != 12 {
		return false
	}
	for _, r := range mac {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

package format

import "github.com/Tan4ek/alfred-qingping-monitor/internal/qingping"

const (
	iconGreen  = "smile_green.png"
	iconYellow = "smile_yellow.png"
	iconRed    = "sigh_red.png"
)

// Air-quality thresholds. Values below the first bound are fine, below the
// second are a warning, above are bad. Humidity and temperature are banded:
// a comfortable middle, a tolerable margin on both sides, bad outside.
const (
	co2Green  = 1000
	co2Yellow = 2000

	pm25Green  = 12
	pm25Yellow = 35

	tvocGreen  = 220
	tvocYellow = 660

	humidityGreenLow   = 40
	humidityGreenHigh  = 60
	humidityYellowLow  = 20
	humidityYellowHigh = 80

	temperatureGreenLow   = 20
	temperatureGreenHigh  = 27
	temperatureYellowLow  = 18
	temperatureYellowHigh = 32
)

// levelIcon picks the icon file for a measurement value.
func levelIcon(kind qingping.Kind, value float64) string {
	switch kind {
	case qingping.KindCO2:
		return risingIcon(value, co2Green, co2Yellow)
	case qingping.KindPM25:
		return risingIcon(value, pm25Green, pm25Yellow)
	case qingping.KindTVOC:
		return risingIcon(value, tvocGreen, tvocYellow)
	case qingping.KindHumidity:
		return bandedIcon(value, humidityYellowLow, humidityGreenLow, humidityGreenHigh, humidityYellowHigh)
	case qingping.KindTemperature:
		return bandedIcon(value, temperatureYellowLow, temperatureGreenLow, temperatureGreenHigh, temperatureYellowHigh)
	}
	return iconYellow
}

// risingIcon is for measurements where only high values are bad.
func risingIcon(value, green, yellow float64) string {
	switch {
	case value < green:
		return iconGreen
	case value < yellow:
		return iconYellow
	default:
		return iconRed
	}
}

// bandedIcon is for measurements with a comfortable middle band:
// green in [greenLow, greenHigh), yellow in the margins
// [yellowLow, greenLow) and [greenHigh, yellowHigh), red outside.
func bandedIcon(value, yellowLow, greenLow, greenHigh, yellowHigh float64) string {
	switch {
	case value >= greenLow && value < greenHigh:
		return iconGreen
	case value >= yellowLow && value < greenLow,
		value >= greenHigh && value < yellowHigh:
		return iconYellow
	default:
		return iconRed
	}
}

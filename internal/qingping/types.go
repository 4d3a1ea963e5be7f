package qingping

import "time"

// Kind identifies one measurement channel reported by a device. The values
// match the keys the Qingping Cloud API uses in a device's data block; keys
// outside this set are dropped at decode time.
type Kind string

const (
	KindCO2         Kind = "co2"
	KindPM25        Kind = "pm25"
	KindTVOC        Kind = "tvoc"
	KindTemperature Kind = "temperature"
	KindHumidity    Kind = "humidity"
)

// Unit returns the display unit for the kind.
func (k Kind) Unit() string {
	switch k {
	case KindCO2:
		return "ppm"
	case KindPM25:
		return "μg/m³"
	case KindTVOC:
		return "ppb"
	case KindTemperature:
		return "°C"
	case KindHumidity:
		return "%"
	}
	return ""
}

// Label returns the display name for the kind.
func (k Kind) Label() string {
	switch k {
	case KindCO2:
		return "CO2"
	case KindPM25:
		return "PM2.5"
	case KindTVOC:
		return "TVOC"
	case KindTemperature:
		return "Temperature"
	case KindHumidity:
		return "Humidity"
	}
	return ""
}

// Device is one sensor registered to the account behind the configured
// credentials.
type Device struct {
	MAC            string
	Name           string
	Version        string
	LastSeen       time.Time
	ReportInterval time.Duration
}

// Reading is a single measurement taken from a device's latest data block.
// Readings are immutable once fetched.
type Reading struct {
	DeviceMAC string
	Kind      Kind
	Value     float64
	Unit      string
	Time      time.Time
}

// Token is an OAuth access token for the Qingping Cloud API.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Valid reports whether the token can still be presented at now.
func (t *Token) Valid(now time.Time) bool {
	return t != nil && t.AccessToken != "" && now.Before(t.ExpiresAt)
}

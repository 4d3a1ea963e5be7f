package qingping

import (
	"testing"
	"time"
)

func TestToken_Valid(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		tok  *Token
		want bool
	}{
		{name: "nil token", tok: nil, want: false},
		{name: "empty access token", tok: &Token{ExpiresAt: now.Add(time.Hour)}, want: false},
		{name: "expired", tok: &Token{AccessToken: "x", ExpiresAt: now.Add(-time.Second)}, want: false},
		{name: "expires exactly now", tok: &Token{AccessToken: "x", ExpiresAt: now}, want: false},
		{name: "still valid", tok: &Token{AccessToken: "x", ExpiresAt: now.Add(time.Minute)}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.Valid(now); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeMAC(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already normalized", in: "582D34702F6B", want: "582D34702F6B"},
		{name: "lower case", in: "582d34702f6b", want: "582D34702F6B"},
		{name: "colons", in: "58:2d:34:70:2f:6b", want: "582D34702F6B"},
		{name: "dashes", in: "58-2D-34-70-2F-6B", want: "582D34702F6B"},
		{name: "whitespace", in: " 582D34702F6B\n", want: "582D34702F6B"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeMAC(tt.in); got != tt.want {
				t.Errorf("NormalizeMAC(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKind_UnitAndLabel(t *testing.T) {
	tests := []struct {
		kind  Kind
		unit  string
		label string
	}{
		{kind: KindCO2, unit: "ppm", label: "CO2"},
		{kind: KindPM25, unit: "μg/m³", label: "PM2.5"},
		{kind: KindTVOC, unit: "ppb", label: "TVOC"},
		{kind: KindTemperature, unit: "°C", label: "Temperature"},
		{kind: KindHumidity, unit: "%", label: "Humidity"},
		{kind: Kind("battery"), unit: "", label: ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Unit(); got != tt.unit {
				t.Errorf("Unit() = %q, want %q", got, tt.unit)
			}
			if got := tt.kind.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
		})
	}
}

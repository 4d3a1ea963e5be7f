package command

import "testing"

func TestParse_Empty(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "empty", query: ""},
		{name: "whitespace only", query: "   \t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v, want nil", tt.query, err)
			}
			if _, ok := cmd.(ListDevices); !ok {
				t.Fatalf("Parse(%q) = %T, want ListDevices", tt.query, cmd)
			}
		})
	}
}

func TestParse_ShowReadings(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantMAC string
	}{
		{name: "plain hex", query: "582D34702F6B", wantMAC: "582D34702F6B"},
		{name: "lower case", query: "582d34702f6b", wantMAC: "582D34702F6B"},
		{name: "colon separators", query: "58:2d:34:70:2f:6b", wantMAC: "582D34702F6B"},
		{name: "dash separators", query: "58-2D-34-70-2F-6B", wantMAC: "582D34702F6B"},
		{name: "surrounding whitespace", query: "  582D34702F6B  ", wantMAC: "582D34702F6B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v, want nil", tt.query, err)
			}
			sr, ok := cmd.(ShowReadings)
			if !ok {
				t.Fatalf("Parse(%q) = %T, want ShowReadings", tt.query, cmd)
			}
			if sr.MAC != tt.wantMAC {
				t.Errorf("MAC = %q, want %q", sr.MAC, tt.wantMAC)
			}
		})
	}
}

func TestParse_ListIntervals(t *testing.T) {
	cmd, err := Parse("582D34702F6B interval")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	li, ok := cmd.(ListIntervals)
	if !ok {
		t.Fatalf("Parse() = %T, want ListIntervals", cmd)
	}
	if li.MAC != "582D34702F6B" {
		t.Errorf("MAC = %q, want %q", li.MAC, "582D34702F6B")
	}
}

func TestParse_SetInterval(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantMinutes int
	}{
		{name: "one minute", query: "582D34702F6B interval 1", wantMinutes: 1},
		{name: "an hour", query: "582D34702F6B interval 60", wantMinutes: 60},
		// Out-of-range values still parse; the client rejects them
		// before any network call.
		{name: "out of range parses", query: "582D34702F6B interval 90", wantMinutes: 90},
		{name: "negative parses", query: "582D34702F6B interval -5", wantMinutes: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v, want nil", tt.query, err)
			}
			si, ok := cmd.(SetInterval)
			if !ok {
				t.Fatalf("Parse(%q) = %T, want SetInterval", tt.query, cmd)
			}
			if si.Minutes != tt.wantMinutes {
				t.Errorf("Minutes = %d, want %d", si.Minutes, tt.wantMinutes)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "not a MAC", query: "kitchen"},
		{name: "MAC too short", query: "582D34"},
		{name: "MAC with non-hex", query: "582D34702FZZ"},
		{name: "unknown action", query: "582D34702F6B brightness"},
		{name: "interval not a number", query: "582D34702F6B interval soon"},
		{name: "trailing garbage", query: "582D34702F6B interval 5 please"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.query)
			if err == nil {
				t.Fatalf("Parse(%q) = %#v, want error", tt.query, cmd)
			}
		})
	}
}

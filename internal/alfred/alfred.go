// Package alfred models the script-filter JSON document Alfred expects on
// stdout: a single object with an "items" array.
package alfred

import (
	"encoding/json"
	"io"
)

type Icon struct {
	Path string `json:"path"`
}

// Item is one selectable row. Valid nil means selectable (Alfred's default);
// use Invalid() for purely informational rows.
type Item struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Arg      string `json:"arg,omitempty"`
	Valid    *bool  `json:"valid,omitempty"`
	Icon     *Icon  `json:"icon,omitempty"`
}

type Feedback struct {
	Items []Item `json:"items"`
}

// Invalid returns the pointer Item.Valid needs for a non-actionable row.
func Invalid() *bool {
	v := false
	return &v
}

// Write encodes the feedback to w. A nil item slice is written as an empty
// array; Alfred rejects "items": null.
func (f Feedback) Write(w io.Writer) error {
	if f.Items == nil {
		f.Items = []Item{}
	}
	return json.NewEncoder(w).Encode(f)
}

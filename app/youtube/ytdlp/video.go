package ytdlp

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Playlist is a flat playlist dump. Entries is nil if the document had no entries array.
type Playlist struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Entries []Entry `json:"entries"`
}

// Entry is a shallow playlist item
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Video is the subset of the single video dump we use.
// Numeric fields are optional and may come as numbers or numeric strings.
type Video struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Duration   Number `json:"duration"`
	ViewCount  Number `json:"view_count"`
	UploadDate string `json:"upload_date"`
}

// Number is an optional numeric field. Valid is false for absent, null or non-numeric values.
type Number struct {
	Value float64
	Valid bool
}

// UnmarshalJSON accepts numbers and numeric strings, anything else leaves the number invalid
func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil //nolint:nilerr // unparsable value is treated as absent
	}
	switch val := v.(type) {
	case float64:
		n.Value, n.Valid = val, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			n.Value, n.Valid = f, true
		}
	}
	return nil
}

// Truthy reports a present, non-zero value
func (n Number) Truthy() bool {
	return n.Valid && n.Value != 0
}

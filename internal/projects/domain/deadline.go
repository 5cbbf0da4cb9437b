package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Deadline wraps time.Time so it can be decoded from both shapes the
// frontend sends: a date string, or a Firestore-style timestamp pair
// {"seconds": ..., "nanoseconds": ...}. Both decode to the same instant.
type Deadline struct {
	time.Time
}

var deadlineLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (d *Deadline) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		for _, layout := range deadlineLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				d.Time = t
				return nil
			}
		}
		return fmt.Errorf("unrecognized deadline %q", s)
	}

	var ts struct {
		Seconds     int64 `json:"seconds"`
		Nanoseconds int64 `json:"nanoseconds"`
	}
	if err := json.Unmarshal(data, &ts); err != nil {
		return fmt.Errorf("unrecognized deadline: %w", err)
	}
	d.Time = time.Unix(ts.Seconds, ts.Nanoseconds).UTC()
	return nil
}

func (d Deadline) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time)
}

package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a time.Time that tolerates the backend's date formats.
// The zero value means the field was missing or null.
//
// The backend serialises LocalDateTime values without an offset. Those are
// held as a UTC wall clock until In anchors them to a location.
type Timestamp struct {
	time.Time
	zoneless bool
}

// At wraps t.
func At(t time.Time) Timestamp { return Timestamp{Time: t} }

// ParseTimestamp accepts RFC 3339 or a zone-less ISO date-time.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t}, nil
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Timestamp{Time: t, zoneless: true}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// Zoneless reports whether the value arrived without an offset and has not
// been anchored yet.
func (t Timestamp) Zoneless() bool { return t.zoneless }

// In anchors a zone-less value's wall clock in loc. Values that carried an
// offset are returned unchanged.
func (t Timestamp) In(loc *time.Location) Timestamp {
	if !t.zoneless || loc == nil {
		return t
	}
	w := t.Time
	return Timestamp{Time: time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), loc)}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

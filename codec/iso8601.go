// Package codec converts between the wire representation of ISO-8601
// timestamps/dates and their domain representation. Parsing is lenient
// (RFC 3339 with or without zone, optional time part); encoding is canonical,
// so a decode/encode round trip is stable.
package codec

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
)

const (
	layoutBareSeconds = "2006-01-02T15:04:05"
	layoutDateOnly    = "2006-01-02"
)

// Timestamp is an ISO-8601 point in time, normalized to UTC at construction.
type Timestamp struct {
	time.Time
}

// ParseTimestamp accepts RFC 3339 (with optional fractional seconds), a bare
// local datetime ("2006-01-02T15:04:05", read as UTC) or a plain date.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{t.UTC()}, nil
	}
	if t, err := time.Parse(layoutBareSeconds, s); err == nil {
		return Timestamp{t}, nil
	}
	if t, err := time.Parse(layoutDateOnly, s); err == nil {
		return Timestamp{t}, nil
	}
	return Timestamp{}, fmt.Errorf("invalid ISO-8601 timestamp %q", s)
}

// String renders the canonical form: UTC, RFC 3339, trailing zeros trimmed.
func (t Timestamp) String() string { return t.UTC().Format(time.RFC3339Nano) }

func (t Timestamp) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Date is an ISO-8601 calendar date. Inputs carrying a time part are
// truncated to the day at construction, keeping round trips canonical.
type Date struct {
	time.Time
}

// ParseDate accepts a plain date or any input ParseTimestamp accepts.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(layoutDateOnly, s); err == nil {
		return Date{t}, nil
	}
	ts, err := ParseTimestamp(s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid ISO-8601 date %q", s)
	}
	return Date{ts.Truncate(24 * time.Hour)}, nil
}

// String renders the canonical "2006-01-02" form.
func (d Date) String() string { return d.UTC().Format(layoutDateOnly) }

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

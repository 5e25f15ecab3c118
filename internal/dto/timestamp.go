package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp is a time.Time that travels as an ISO-8601 string.
//
// Marshalling always emits whole-second UTC ("2025-10-03T18:04:05Z"), which
// every ISO-8601 decoder accepts. Unmarshalling accepts fractional seconds and
// any offset.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// TimestampPtr wraps t and returns a pointer, for optional fields.
func TimestampPtr(t time.Time) *Timestamp {
	ts := NewTimestamp(t)
	return &ts
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves t unchanged.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	// RFC3339 parsing also accepts a fractional seconds field.
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("timestamp %q is not ISO-8601: %w", s, err)
	}
	t.Time = parsed
	return nil
}

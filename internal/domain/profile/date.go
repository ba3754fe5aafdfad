package profile

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

const invalidDisplay = "Invalid Date"

// Date is a calendar date without time of day. It encodes as "YYYY-MM-DD",
// the value an HTML date input submits. A stored value that does not parse
// is kept verbatim in raw so the rest of the profile survives it.
type Date struct {
	t   time.Time
	raw string
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts "YYYY-MM-DD" and, for older blobs, a full RFC 3339
// timestamp of which only the date part is kept.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{t: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

func (d Date) IsZero() bool {
	return d.t.IsZero() && d.raw == ""
}

// Valid is false for a stored value that could not be parsed.
func (d Date) Valid() bool {
	return d.raw == ""
}

func (d Date) Time() time.Time {
	return d.t
}

func (d Date) String() string {
	if !d.Valid() {
		return d.raw
	}
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// Display renders the date the way the portfolio shows it (M/D/YYYY).
func (d Date) Display() string {
	if !d.Valid() {
		return invalidDisplay
	}
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format("1/2/2006")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		*d = Date{raw: s}
		return nil
	}
	*d = parsed
	return nil
}

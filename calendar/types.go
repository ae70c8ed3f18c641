package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Holiday is one calendar entry as supplied by the external holiday source.
// Calendar data is read-only ground truth; the module never computes or
// mutates it.
type Holiday struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Date     Date     `json:"date"`
	Type     string   `json:"type"`
	Global   bool     `json:"global"`
	Counties []string `json:"counties,omitempty"`
}

// Provider serves the ordered holiday list for a country and year. The order
// is the source's natural order and must be stable between calls; scan
// pagination depends on it.
type Provider interface {
	Holidays(ctx context.Context, countryCode string, year int) ([]Holiday, error)
}

// Date is an ISO-8601 calendar date without a time component.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON accepts "2006-01-02" and tolerates full RFC 3339 timestamps.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("calendar: empty date")
	}
	if parsed, err := time.Parse(time.DateOnly, raw); err == nil {
		d.Time = parsed
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("calendar: invalid date %q: %w", raw, err)
	}
	d.Time = parsed
	return nil
}

// MarshalJSON renders the date-only form.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

// Date accepts an ISO 8601 timestamp or a plain calendar date.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.New("dates must be ISO 8601 strings")
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(time.RFC3339Nano))
}

// ParseDate parses value with the first layout that matches. Results are UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

func validateDateRange(start, end *Date) error {
	if start == nil || end == nil {
		return nil
	}
	if end.Before(start.Time) {
		return errors.New("endDate must not be before startDate")
	}
	return nil
}

func validateOptionalURL(field string, value *string) error {
	if value == nil || *value == "" {
		return nil
	}
	return validateURL(field, *value)
}

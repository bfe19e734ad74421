// Package dates converts between the booking form's date-time input values and
// time.Time, and derives the end date when the start date moves.
package dates

import (
	"fmt"
	"strings"
	"time"

	_ "time/tzdata" // zone hints must resolve on hosts without a zoneinfo database
)

// InputLayout is the minute-precision layout of a datetime-local control.
const InputLayout = "2006-01-02T15:04"

// DefaultEndHour is the hour of day an auto-adjusted end date lands on.
const DefaultEndHour = 18

var inputLayouts = []string{
	InputLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseInput coerces a textual date-time value. Values without an offset are
// read as wall-clock time in loc.
func ParseInput(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date value")
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date value %q", value)
}

// FormatInput renders t the way the input control expects it, seconds dropped.
func FormatInput(t time.Time) string {
	return t.Format(InputLayout)
}

// Location resolves an IANA zone name, using fallback when name is empty.
func Location(name string, fallback *time.Location) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if fallback == nil {
			return time.UTC, nil
		}
		return fallback, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", name, err)
	}
	return loc, nil
}

// AdjustEndDate reacts to a start date edit on the creation form. When the new
// start falls after the current end, the end moves to 18:00 on the start's day
// and changed is true. In every other case currentEnd comes back untouched.
// Edits to the end date never feed back into the start date.
func AdjustEndDate(newStart, currentEnd string, isNewBooking bool) (string, bool) {
	if !isNewBooking || strings.TrimSpace(currentEnd) == "" {
		return currentEnd, false
	}

	// Both values are wall-clock strings from the same form, so any shared
	// location compares them correctly.
	start, err := ParseInput(newStart, time.UTC)
	if err != nil {
		return currentEnd, false
	}
	end, err := ParseInput(currentEnd, time.UTC)
	if err != nil {
		return currentEnd, false
	}
	if !start.After(end) {
		return currentEnd, false
	}

	adjusted := time.Date(start.Year(), start.Month(), start.Day(), DefaultEndHour, 0, 0, 0, start.Location())
	return FormatInput(adjusted), true
}

package entity

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

const calendarDateLayout = "2006-01-02"

// CalendarDate is a date without time-of-day or zone, in YYYY-MM-DD form.
// Values mirrored from clients are kept verbatim; use Valid before comparing.
type CalendarDate string

// ParseCalendarDate parses a YYYY-MM-DD string.
func ParseCalendarDate(value string) (CalendarDate, error) {
	t, err := time.Parse(calendarDateLayout, strings.TrimSpace(value))
	if err != nil {
		return "", errors.Wrapf(err, "invalid calendar date %q", value)
	}

	return CalendarDate(t.Format(calendarDateLayout)), nil
}

// CalendarDateOf returns the calendar date of t in t's own location.
func CalendarDateOf(t time.Time) CalendarDate {
	return CalendarDate(t.Format(calendarDateLayout))
}

// TodayIn returns the calendar date of now in loc.
func TodayIn(loc *time.Location, now time.Time) CalendarDate {
	return CalendarDateOf(now.In(loc))
}

// Valid reports whether d is a well-formed YYYY-MM-DD date.
func (d CalendarDate) Valid() bool {
	if len(d) != len(calendarDateLayout) {
		return false
	}
	_, err := time.Parse(calendarDateLayout, string(d))

	return err == nil
}

// IsZero reports whether d is unset.
func (d CalendarDate) IsZero() bool {
	return d == ""
}

// Equal reports whether d and other are the same valid date. Malformed dates never match.
func (d CalendarDate) Equal(other CalendarDate) bool {
	return d.Valid() && d == other
}

// Before reports whether d is strictly earlier than other. Both must be valid.
func (d CalendarDate) Before(other CalendarDate) bool {
	// canonical YYYY-MM-DD strings order lexically
	return d.Valid() && other.Valid() && d < other
}

// Noon returns 12:00 of d in loc.
func (d CalendarDate) Noon(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(calendarDateLayout, string(d), loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid calendar date %q", string(d))
	}

	return t.Add(12 * time.Hour), nil
}

func (d CalendarDate) String() string {
	return string(d)
}

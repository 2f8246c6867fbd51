package timeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gym-portal/internal/models"
)

var ErrMalformedTime = errors.New("malformed time value")

const (
	dayOpensAt  = 7 * 60  // collapsed events start at 07:00
	dayClosesAt = 22 * 60 // ...and end at 22:00, the club's closing hour
)

// ParseMinutes normalizes a time-of-day value into minutes since midnight.
func ParseMinutes(v models.TimeValue) (int, error) {
	switch t := v.(type) {
	case models.StringTime:
		return parseClockString(string(t))
	case models.ClockTime:
		return clockMinutes(t.Hour, t.Minute, t.String())
	case models.RawTime:
		if t.Value == nil {
			return 0, fmt.Errorf("%w: empty", ErrMalformedTime)
		}
		return parseClockString(t.String())
	case nil:
		return 0, fmt.Errorf("%w: empty", ErrMalformedTime)
	}
	return 0, fmt.Errorf("%w: unsupported %T", ErrMalformedTime, v)
}

// parseClockString accepts "9:5", "09:30", "09:30:00" and timestamps like
// "0000-01-01T15:30:00Z" where only the clock part counts.
func parseClockString(s string) (int, error) {
	raw := strings.TrimSpace(s)
	if idx := strings.Index(raw, "T"); idx != -1 {
		raw = raw[idx+1:]
	}
	raw = strings.TrimSuffix(raw, "Z")

	parts := strings.Split(raw, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	return clockMinutes(hour, minute, s)
}

func clockMinutes(hour, minute int, src string) (int, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrMalformedTime, src)
	}
	return hour*60 + minute, nil
}

// FormatMinutes renders minutes since midnight as "HH:mm".
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// dateOf drops the clock part, keeping the calendar date in loc.
func dateOf(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// at attaches a wall-clock minute offset to the calendar date of day.
func at(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, day.Location())
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// isoWeekday maps time.Weekday to 1 (Monday) .. 7 (Sunday).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// WeekBounds returns Monday and Sunday of the week containing date.
func WeekBounds(date time.Time) (time.Time, time.Time) {
	day := dateOf(date, date.Location())
	monday := day.AddDate(0, 0, -(isoWeekday(day) - 1))
	return monday, monday.AddDate(0, 0, 6)
}

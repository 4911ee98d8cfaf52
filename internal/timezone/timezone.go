package timezone

import (
	"sync/atomic"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Argentina/Buenos_Aires"

var current atomic.Value

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Set configures the business time zone used for day/month boundaries.
// Invalid names are ignored.
func Set(tz string) {
	if !IsValid(tz) {
		return
	}
	loc, _ := time.LoadLocation(tz)
	current.Store(loc)
}

func Location() *time.Location {
	if loc, ok := current.Load().(*time.Location); ok {
		return loc
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

// DayBounds returns [00:00, next 00:00) of t's calendar day in the business zone.
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.In(Location())
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, Location())
}

// ParseDateTime accepts RFC3339 or the "2006-01-02 15:04[:05]" forms, the
// latter interpreted in the business zone.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, Location()); err == nil {
			return t, nil
		}
	}
	return time.ParseInLocation("2006-01-02", s, Location())
}

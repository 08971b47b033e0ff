// Package schedule normalizes booking dates and times so slot
// comparisons are done on canonical values instead of raw form input.
package schedule

import (
	"errors"
	"time"
)

// Slot is a calendar position held by a booking.
type Slot struct {
	Date string // YYYY-MM-DD
	Time string // HH:MM, empty for all-day
}

var (
	ErrBadDate = errors.New("invalid date, use RFC3339 or YYYY-MM-DD")
	ErrBadTime = errors.New("invalid time, use HH:MM")
)

// dateLayouts accepted from clients, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var timeLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM"}

// NormalizeDate parses a client-supplied date in any accepted layout
// and returns it as YYYY-MM-DD.
func NormalizeDate(raw string) (string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", ErrBadDate
}

// NormalizeTime parses a client-supplied time of day and returns it as
// HH:MM; an empty input stays empty (all-day slot).
func NormalizeTime(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", ErrBadTime
}

// NewSlot normalizes a raw date/time pair.
func NewSlot(rawDate, rawTime string) (Slot, error) {
	d, err := NormalizeDate(rawDate)
	if err != nil {
		return Slot{}, err
	}
	tm, err := NormalizeTime(rawTime)
	if err != nil {
		return Slot{}, err
	}
	return Slot{Date: d, Time: tm}, nil
}

// Conflicts reports whether two slots collide: same date and either
// identical times or one of them holding the whole day.
func (s Slot) Conflicts(other Slot) bool {
	if s.Date != other.Date {
		return false
	}
	if s.Time == "" || other.Time == "" {
		return true
	}
	return s.Time == other.Time
}

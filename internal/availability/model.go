package availability

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimeOfDay is a local wall-clock time with minute precision, stored as
// minutes since midnight. Slots carry wall-clock times, not instants, so
// time.Time is deliberately not used here.
type TimeOfDay int

// Providers may only declare availability inside the business window.
const (
	BusinessOpen  TimeOfDay = 7 * 60  // 07:00
	BusinessClose TimeOfDay = 19 * 60 // 19:00
)

// ParseTimeOfDay parses "HH:MM" (24h clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) Minutes() int {
	return int(t)
}

// Slot is one bookable window a provider has declared on a calendar day.
// Slots are never edited in place; changes are delete and recreate.
type Slot struct {
	ID         uuid.UUID
	ProviderID uuid.UUID
	Date       time.Time // calendar date, midnight UTC
	Start      TimeOfDay
	End        TimeOfDay
	CreatedAt  time.Time
}

// NormalizeDate truncates t to its calendar date at midnight UTC.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d.UTC(), nil
}

// overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching endpoints do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}

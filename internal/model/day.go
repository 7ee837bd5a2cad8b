package model

import (
	"fmt"
	"time"
)

// DayLayout is the wire format of a Day.
const DayLayout = "2006-01-02"

// Day is a calendar date with no time-of-day or zone. The YYYY-MM-DD form
// sorts lexically in chronological order.
type Day string

// DayOf returns the date of t on t's own wall clock.
func DayOf(t time.Time) Day {
	return Day(t.Format(DayLayout))
}

// ParseDay validates s and returns it as a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return "", fmt.Errorf("parse day %q: %w", s, err)
	}
	return DayOf(t), nil
}

// MustDay is ParseDay for literals; it panics on malformed input.
func MustDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight UTC of d. A malformed Day yields the zero time.
func (d Day) Time() time.Time {
	t, err := time.Parse(DayLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Day) String() string { return string(d) }

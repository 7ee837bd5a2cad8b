// Package calendar derives trading days from a reference instrument and picks
// equidistant sample dates for each timeframe.
package calendar

import (
	"context"
	"sort"
	"time"

	"GoldLens/internal/logger"
	"GoldLens/internal/model"
)

// HistorySource returns the full daily history of one instrument.
type HistorySource interface {
	History(ctx context.Context, symbol string) ([]model.DailyClose, error)
}

// Calendar is the ascending, duplicate-free list of trading days.
type Calendar struct {
	days []model.Day
}

// Resolve builds a Calendar from a daily history. Input order does not matter.
func Resolve(history []model.DailyClose) Calendar {
	days := make([]model.Day, 0, len(history))
	for _, h := range history {
		if h.Day == "" {
			continue
		}
		days = append(days, h.Day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	out := days[:0]
	for i, d := range days {
		if i > 0 && d == days[i-1] {
			continue
		}
		out = append(out, d)
	}
	return Calendar{days: out}
}

// Load fetches the reference history and resolves it. A failed or empty
// history yields an empty calendar; the run continues with empty timeframes.
func Load(ctx context.Context, src HistorySource, symbol string) Calendar {
	history, err := src.History(ctx, symbol)
	if err != nil {
		logger.L.Warnf("reference history %s unavailable, calendar is empty: %v", symbol, err)
		return Calendar{}
	}
	cal := Resolve(history)
	if cal.Len() == 0 {
		logger.L.Warnf("reference history %s is empty, calendar is empty", symbol)
		return cal
	}
	logger.L.Infof("calendar resolved from %s: %d trading days (%s .. %s)",
		symbol, cal.Len(), cal.days[0], cal.days[cal.Len()-1])
	return cal
}

// Len returns the number of trading days.
func (c Calendar) Len() int { return len(c.days) }

// Days returns a copy of the trading days.
func (c Calendar) Days() []model.Day {
	out := make([]model.Day, len(c.days))
	copy(out, c.days)
	return out
}

// Window returns the trading days whose midnight lies in [start, end].
// start and end are compared on their own wall clocks.
func (c Calendar) Window(start, end time.Time) []model.Day {
	s, e := wallClock(start), wallClock(end)
	lo := sort.Search(len(c.days), func(i int) bool { return !c.days[i].Time().Before(s) })
	hi := sort.Search(len(c.days), func(i int) bool { return c.days[i].Time().After(e) })
	if lo >= hi {
		return nil
	}
	out := make([]model.Day, hi-lo)
	copy(out, c.days[lo:hi])
	return out
}

// wallClock re-labels t's local date and time as UTC so it compares directly
// against Day.Time.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

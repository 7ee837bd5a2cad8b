package pipeline

import "time"

// TimeframeStat summarises one assembled timeframe.
type TimeframeStat struct {
	Label  string
	Points int
	Absent int
}

// Report describes one run. It is returned even when the run fails.
type Report struct {
	RunID         string
	AsOf          time.Time
	Started       time.Time
	Duration      time.Duration
	CalendarDays  int
	Assets        int
	Timeframes    []TimeframeStat
	Chunks        int
	FailedChunks  int
	FailedSymbols []string
	GoldRows      int
	Artifacts     []string
	Warnings      []string
}

// OK reports whether the run finished without warnings.
func (r *Report) OK() bool { return len(r.Warnings) == 0 }

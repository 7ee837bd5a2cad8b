package model

// DefaultTargetPoints is the number of sample dates per timeframe.
const DefaultTargetPoints = 100

// Timeframe is a named look-back window with a target sample count.
type Timeframe struct {
	Label        string `mapstructure:"label"`
	Days         int    `mapstructure:"days"`
	TargetPoints int    `mapstructure:"target_points"`
}

// DefaultTimeframes returns the standard windows, longest first.
func DefaultTimeframes() []Timeframe {
	years := func(label string, n int) Timeframe {
		return Timeframe{Label: label, Days: 365 * n, TargetPoints: DefaultTargetPoints}
	}
	months := func(label string, n int) Timeframe {
		return Timeframe{Label: label, Days: 30 * n, TargetPoints: DefaultTargetPoints}
	}
	return []Timeframe{
		years("50y", 50),
		years("20y", 20),
		years("10y", 10),
		years("5y", 5),
		years("2y", 2),
		years("1y", 1),
		months("6m", 6),
		months("3m", 3),
	}
}

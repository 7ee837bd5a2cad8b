package calendar

import (
	"math"
	"time"

	"GoldLens/internal/logger"
	"GoldLens/internal/model"
)

// Sample is the set of dates chosen for one timeframe.
type Sample struct {
	Timeframe model.Timeframe
	Days      []model.Day
}

// SampleDates filters cal to the timeframe's look-back window ending at asOf
// and downsamples it to the timeframe's target point count.
//
// Windows with no more than the target count are returned whole. Longer ones
// are reduced by linear interpolation over the index range, rounded to the
// nearest index; first and last days are always kept.
func SampleDates(cal Calendar, tf model.Timeframe, asOf time.Time) []model.Day {
	start := asOf.AddDate(0, 0, -tf.Days)
	days := cal.Window(start, asOf)
	n := len(days)
	if n == 0 {
		logger.L.Warnf("timeframe %s: no trading days in window", tf.Label)
		return nil
	}

	target := tf.TargetPoints
	if target <= 0 {
		target = model.DefaultTargetPoints
	}
	if n <= target {
		logger.L.Debugf("timeframe %s: using all %d trading days", tf.Label, n)
		return days
	}
	if target == 1 {
		return days[n-1:]
	}

	out := make([]model.Day, 0, target)
	step := float64(n-1) / float64(target-1)
	last := -1
	for i := 0; i < target; i++ {
		idx := int(math.Round(float64(i) * step))
		if idx > n-1 {
			idx = n - 1
		}
		if idx == last {
			continue
		}
		out = append(out, days[idx])
		last = idx
	}
	logger.L.Debugf("timeframe %s: selected %d dates from %d trading days", tf.Label, len(out), n)
	return out
}

// SampleAll samples every timeframe against the one shared calendar,
// preserving the order of tfs.
func SampleAll(cal Calendar, tfs []model.Timeframe, asOf time.Time) []Sample {
	out := make([]Sample, 0, len(tfs))
	for _, tf := range tfs {
		out = append(out, Sample{Timeframe: tf, Days: SampleDates(cal, tf, asOf)})
	}
	return out
}

// Earliest returns the oldest sampled day across all samples.
func Earliest(samples []Sample) (model.Day, bool) {
	var earliest model.Day
	for _, s := range samples {
		if len(s.Days) == 0 {
			continue
		}
		if earliest == "" || s.Days[0] < earliest {
			earliest = s.Days[0]
		}
	}
	return earliest, earliest != ""
}

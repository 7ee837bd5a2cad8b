// Package normalizer reconciles a low-frequency price history with a recent
// high-frequency tail and expresses every asset in units of a reference asset.
package normalizer

import (
	"math"
	"sort"

	"GoldLens/internal/model"
)

// SeriesFromTables flattens retrieved tables into a wide series keyed by
// asset key. When a (symbol, day) appears in several tables the first one
// wins, matching the price resolver.
func SeriesFromTables(tables []model.PriceTable, assets []model.AssetKey) model.Series {
	s := model.NewSeries()
	days := make(map[model.Day]bool)
	for _, a := range assets {
		for _, t := range tables {
			for day, v := range t[a.Symbol] {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					continue
				}
				if _, ok := s.Close(a.Key, day); ok {
					continue
				}
				s.Set(a.Key, day, v)
				days[day] = true
			}
		}
	}
	s.Dates = sortedDays(days)
	return s
}

// LatestFor keeps the single date of s on which the reference asset last
// closed, with every asset's close on that date. Assets trading on days the
// reference does not (crypto on weekends) cannot push the tail past the
// reference's latest close. Without a reference close the result is empty.
func LatestFor(s model.Series, referenceKey string) model.Series {
	out := model.NewSeries()
	var last model.Day
	for d := range s.Closes[referenceKey] {
		if d > last {
			last = d
		}
	}
	if last == "" {
		return out
	}
	out.Dates = []model.Day{last}
	for key, closes := range s.Closes {
		if v, ok := closes[last]; ok {
			out.Set(key, last, v)
		}
	}
	return out
}

// Reconcile appends tail to base when the tail's last date is strictly after
// base's last date. Otherwise base is returned unchanged and the tail is
// discarded. Tail dates not after base's last date are never appended.
func Reconcile(base, tail model.Series) model.Series {
	tailLast, ok := tail.Last()
	if !ok {
		return base
	}
	baseLast, hasBase := base.Last()
	if hasBase && tailLast <= baseLast {
		return base
	}

	out := model.NewSeries()
	out.Dates = append(out.Dates, base.Dates...)
	for key, closes := range base.Closes {
		for d, v := range closes {
			out.Set(key, d, v)
		}
	}
	for _, d := range tail.Dates {
		if hasBase && d <= baseLast {
			continue
		}
		out.Dates = append(out.Dates, d)
		for key, closes := range tail.Closes {
			if v, ok := closes[d]; ok {
				out.Set(key, d, v)
			}
		}
	}
	return out
}

func sortedDays(set map[model.Day]bool) []model.Day {
	days := make([]model.Day, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

package normalizer

import (
	"errors"
	"fmt"
	"sort"

	"GoldLens/internal/model"
)

// ErrMissingReference means the reference asset has no usable price in the
// series.
var ErrMissingReference = errors.New("reference asset missing")

// Normalize expresses every asset of s in units of the reference asset.
// A row is emitted only where both the asset close and a non-zero reference
// close exist on the same date. Rows are sorted by (date, ticker).
func Normalize(s model.Series, assets []model.AssetKey, referenceKey string) ([]model.NormalizedRow, error) {
	ref, ok := s.Closes[referenceKey]
	if !ok || len(ref) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingReference, referenceKey)
	}

	sorted := make([]model.AssetKey, len(assets))
	copy(sorted, assets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	var rows []model.NormalizedRow
	for _, day := range s.Dates {
		refClose, ok := ref[day]
		if !ok || refClose == 0 {
			continue
		}
		for _, a := range sorted {
			v, ok := s.Close(a.Key, day)
			if !ok {
				continue
			}
			rows = append(rows, model.NormalizedRow{
				Date:      day,
				Ticker:    a.Key,
				PriceUSD:  model.Round(v, model.PricePlaces),
				PriceGold: model.Round(v/refClose, model.RatioPlaces),
				Type:      a.Category,
			})
		}
	}
	return rows, nil
}

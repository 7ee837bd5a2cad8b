package normalizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldLens/internal/model"
)

func series(dates []model.Day, closes map[string]map[model.Day]float64) model.Series {
	s := model.NewSeries()
	s.Dates = dates
	for key, m := range closes {
		for d, v := range m {
			s.Set(key, d, v)
		}
	}
	return s
}

func weekly() model.Series {
	return series(
		[]model.Day{"2023-12-29", "2024-01-05"},
		map[string]map[model.Day]float64{
			"Gold": {"2023-12-29": 2062.4, "2024-01-05": 2049.8},
			"VOO":  {"2023-12-29": 436.8, "2024-01-05": 431.3},
		},
	)
}

func TestReconcile_AppendsNewerTail(t *testing.T) {
	tail := series([]model.Day{"2024-01-08"}, map[string]map[model.Day]float64{"Gold": {"2024-01-08": 10.0}})

	got := Reconcile(weekly(), tail)
	assert.Equal(t, []model.Day{"2023-12-29", "2024-01-05", "2024-01-08"}, got.Dates)
	v, ok := got.Close("Gold", "2024-01-08")
	require.True(t, ok)
	assert.Equal(t, 10.0, v)
	_, ok = got.Close("VOO", "2024-01-08")
	assert.False(t, ok)
}

func TestReconcile_DiscardsStaleTail(t *testing.T) {
	base := weekly()
	for _, d := range []model.Day{"2024-01-04", "2024-01-05"} {
		tail := series([]model.Day{d}, map[string]map[model.Day]float64{"Gold": {d: 9.5}})
		got := Reconcile(base, tail)
		assert.Equal(t, base, got, d)
	}
}

func TestReconcile_EmptyInputs(t *testing.T) {
	tail := series([]model.Day{"2024-01-08"}, map[string]map[model.Day]float64{"Gold": {"2024-01-08": 1}})
	assert.Equal(t, []model.Day{"2024-01-08"}, Reconcile(model.NewSeries(), tail).Dates)
	assert.Equal(t, weekly(), Reconcile(weekly(), model.NewSeries()))
}

func TestLatestFor(t *testing.T) {
	tail := series(
		[]model.Day{"2024-01-04", "2024-01-05"},
		map[string]map[model.Day]float64{
			"Gold": {"2024-01-04": 1, "2024-01-05": 2},
			"VOO":  {"2024-01-04": 3},
		},
	)
	got := LatestFor(tail, "Gold")
	assert.Equal(t, []model.Day{"2024-01-05"}, got.Dates)
	assert.Equal(t, map[string]map[model.Day]float64{"Gold": {"2024-01-05": 2}}, got.Closes)
	assert.Empty(t, LatestFor(model.NewSeries(), "Gold").Dates)
	assert.Empty(t, LatestFor(tail, "Silver").Dates, "no reference close, no tail")
}

func TestLatestFor_WeekendCryptoDoesNotHideReference(t *testing.T) {
	base := series(
		[]model.Day{"2023-12-25", "2024-01-01"},
		map[string]map[model.Day]float64{
			"Gold":    {"2023-12-25": 2060, "2024-01-01": 2062},
			"VOO":     {"2023-12-25": 435, "2024-01-01": 436},
			"Bitcoin": {"2023-12-25": 43000, "2024-01-01": 44000},
		},
	)
	daily := series(
		[]model.Day{"2024-01-05", "2024-01-06", "2024-01-07"},
		map[string]map[model.Day]float64{
			"Gold":    {"2024-01-05": 2049.8},
			"VOO":     {"2024-01-05": 431.3},
			"Bitcoin": {"2024-01-05": 44100, "2024-01-06": 43900, "2024-01-07": 43950},
		},
	)

	tail := LatestFor(daily, "Gold")
	assert.Equal(t, []model.Day{"2024-01-05"}, tail.Dates)
	v, ok := tail.Close("Bitcoin", "2024-01-05")
	require.True(t, ok)
	assert.Equal(t, 44100.0, v)

	combined := Reconcile(base, tail)
	assert.Equal(t, []model.Day{"2023-12-25", "2024-01-01", "2024-01-05"}, combined.Dates)

	rows, err := Normalize(combined, []model.AssetKey{{Key: "Gold"}, {Key: "VOO"}, {Key: "Bitcoin"}}, "Gold")
	require.NoError(t, err)
	last := rows[len(rows)-3:]
	for _, r := range last {
		assert.Equal(t, model.Day("2024-01-05"), r.Date)
	}
	assert.Equal(t, "Gold", last[1].Ticker)
	assert.Equal(t, 2049.8, last[1].PriceUSD)
	assert.Equal(t, "VOO", last[2].Ticker)
	assert.Equal(t, 431.3, last[2].PriceUSD)
}

func TestSeriesFromTables(t *testing.T) {
	t1 := model.PriceTable{}
	t1.Set("GC=F", "2024-01-05", 2049.8)
	t1.Set("GC=F", "2024-01-04", math.NaN())
	t2 := model.PriceTable{}
	t2.Set("GC=F", "2024-01-05", 1)
	t2.Set("VOO", "2023-12-29", 436.8)

	assets := []model.AssetKey{
		{Key: "Gold", Symbol: "GC=F", Category: model.CategoryGold},
		{Key: "VOO", Symbol: "VOO", Category: model.CategoryETF},
	}
	s := SeriesFromTables([]model.PriceTable{t1, t2}, assets)

	assert.Equal(t, []model.Day{"2023-12-29", "2024-01-05"}, s.Dates)
	v, _ := s.Close("Gold", "2024-01-05")
	assert.Equal(t, 2049.8, v, "first table wins")
	_, ok := s.Close("Gold", "2024-01-04")
	assert.False(t, ok, "NaN is dropped")
}

func TestNormalize(t *testing.T) {
	s := series(
		[]model.Day{"2024-01-05", "2024-01-12"},
		map[string]map[model.Day]float64{
			"Gold": {"2024-01-05": 2000.0},
			"VOO":  {"2024-01-05": 150.0, "2024-01-12": 151.0},
			"BTC":  {"2024-01-12": 42000.0},
		},
	)
	assets := []model.AssetKey{
		{Key: "VOO", Category: model.CategoryETF},
		{Key: "Gold", Category: model.CategoryGold},
		{Key: "BTC", Category: model.CategoryCrypto},
	}

	rows, err := Normalize(s, assets, "Gold")
	require.NoError(t, err)
	assert.Equal(t, []model.NormalizedRow{
		{Date: "2024-01-05", Ticker: "Gold", PriceUSD: 2000, PriceGold: 1, Type: model.CategoryGold},
		{Date: "2024-01-05", Ticker: "VOO", PriceUSD: 150, PriceGold: 0.075, Type: model.CategoryETF},
	}, rows, "2024-01-12 has no reference price")
}

func TestNormalize_ZeroReferenceSkipped(t *testing.T) {
	s := series([]model.Day{"2024-01-05"}, map[string]map[model.Day]float64{
		"Gold": {"2024-01-05": 0},
		"VOO":  {"2024-01-05": 150},
	})
	rows, err := Normalize(s, []model.AssetKey{{Key: "VOO"}, {Key: "Gold"}}, "Gold")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestNormalize_RatioRounding(t *testing.T) {
	s := series([]model.Day{"2024-01-05"}, map[string]map[model.Day]float64{
		"Gold": {"2024-01-05": 3},
		"X":    {"2024-01-05": 1.123456789},
	})
	rows, err := Normalize(s, []model.AssetKey{{Key: "X"}, {Key: "Gold"}}, "Gold")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "X", rows[1].Ticker)
	assert.Equal(t, 1.1235, rows[1].PriceUSD)
	assert.Equal(t, 0.374486, rows[1].PriceGold)
}

func TestNormalize_MissingReference(t *testing.T) {
	s := series([]model.Day{"2024-01-05"}, map[string]map[model.Day]float64{"VOO": {"2024-01-05": 150}})
	rows, err := Normalize(s, []model.AssetKey{{Key: "VOO"}}, "Gold")
	assert.ErrorIs(t, err, ErrMissingReference)
	assert.Empty(t, rows)
}

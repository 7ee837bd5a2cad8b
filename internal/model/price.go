package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// PricePlaces is the decimal precision of every resolved close.
const PricePlaces = 4

// RatioPlaces is the decimal precision of reference-normalized ratios.
const RatioPlaces = 6

// Price is the result of a (symbol, date) lookup. Absent is distinct from zero.
type Price struct {
	Value float64
	Valid bool
}

// Absent returns the no-value Price.
func Absent() Price { return Price{} }

// PriceOf wraps v; NaN and infinities are treated as absent.
func PriceOf(v float64) Price {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Price{}
	}
	return Price{Value: v, Valid: true}
}

// MarshalJSON encodes an absent price as null.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(p.Value, 'f', -1, 64)), nil
}

// UnmarshalJSON accepts a number or null.
func (p *Price) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*p = Price{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = PriceOf(v)
	return nil
}

// Round rounds v half away from zero to places decimals. NaN and infinities
// are returned unchanged.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

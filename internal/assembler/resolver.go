// Package assembler turns sampled dates and retrieved price tables into the
// columnar tables the front-end reads.
package assembler

import (
	"math"

	"GoldLens/internal/model"
)

// Resolve returns the close of symbol on day from the first table that holds
// a usable value, rounded to model.PricePlaces. Tables are scanned in
// retrieval order, so duplicate membership resolves deterministically.
func Resolve(tables []model.PriceTable, symbol string, day model.Day) model.Price {
	for _, t := range tables {
		v, ok := t.Close(symbol, day)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		return model.PriceOf(model.Round(v, model.PricePlaces))
	}
	return model.Absent()
}

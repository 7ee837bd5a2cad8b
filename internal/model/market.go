package model

// DailyClose is one close of a reference instrument's history.
type DailyClose struct {
	Day   Day
	Close float64
}

// PriceTable is the canonical per-chunk provider result: symbol -> day -> close.
type PriceTable map[string]map[Day]float64

// Close returns the stored close for symbol on day.
func (t PriceTable) Close(symbol string, day Day) (float64, bool) {
	closes, ok := t[symbol]
	if !ok {
		return 0, false
	}
	v, ok := closes[day]
	return v, ok
}

// Set stores a close, allocating the symbol map on first use.
func (t PriceTable) Set(symbol string, day Day, close float64) {
	closes, ok := t[symbol]
	if !ok {
		closes = make(map[Day]float64)
		t[symbol] = closes
	}
	closes[day] = close
}

package model

// Series is a wide price series: ascending dates, closes keyed by asset key.
type Series struct {
	Dates  []Day
	Closes map[string]map[Day]float64
}

// NewSeries returns an empty series ready for Set.
func NewSeries() Series {
	return Series{Closes: make(map[string]map[Day]float64)}
}

// Last returns the most recent date.
func (s Series) Last() (Day, bool) {
	if len(s.Dates) == 0 {
		return "", false
	}
	return s.Dates[len(s.Dates)-1], true
}

// Close returns the close for key on day.
func (s Series) Close(key string, day Day) (float64, bool) {
	v, ok := s.Closes[key][day]
	return v, ok
}

// Set stores a close. It does not touch Dates.
func (s Series) Set(key string, day Day, v float64) {
	m, ok := s.Closes[key]
	if !ok {
		m = make(map[Day]float64)
		s.Closes[key] = m
	}
	m[day] = v
}

// NormalizedRow is one (date, asset) pair of the gold-normalized artifact.
type NormalizedRow struct {
	Date      Day      `json:"date"`
	Ticker    string   `json:"ticker"`
	PriceUSD  float64  `json:"price_usd"`
	PriceGold float64  `json:"price_gold"`
	Type      Category `json:"type"`
}

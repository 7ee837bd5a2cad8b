package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"GoldLens/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
// Any download whose batch contains a symbol in Fail returns an error.
// Downloads use ByInterval[req.Interval] when present, Closes otherwise.
type MockProvider struct {
	Price       float64
	Closes      model.PriceTable
	ByInterval  map[string]model.PriceTable
	Fail        map[string]bool
	HistoryData []model.DailyClose
	HistoryErr  error

	mu       sync.Mutex
	calls    [][]string
	requests []DownloadRequest
}

func (m *MockProvider) Name() string { return "mock" }

// Download returns the configured closes for the requested symbols.
func (m *MockProvider) Download(_ context.Context, symbols []string, req DownloadRequest) (model.PriceTable, error) {
	m.mu.Lock()
	m.calls = append(m.calls, append([]string(nil), symbols...))
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	for _, s := range symbols {
		if m.Fail[s] {
			return nil, fmt.Errorf("mock: download failed at %s", s)
		}
	}
	source := m.Closes
	if t, ok := m.ByInterval[req.Interval]; ok {
		source = t
	}
	table := make(model.PriceTable, len(symbols))
	for _, s := range symbols {
		for day, v := range source[s] {
			table.Set(s, day, v)
		}
	}
	return table, nil
}

// History returns HistoryData, or generated weekday closes ending today.
func (m *MockProvider) History(_ context.Context, _ string) ([]model.DailyClose, error) {
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	if m.HistoryData != nil {
		return m.HistoryData, nil
	}
	return generateMockCloses(m.Price, time.Now(), 500), nil
}

// Calls returns the symbol batches seen so far.
func (m *MockProvider) Calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.calls...)
}

// Requests returns the download requests seen so far.
func (m *MockProvider) Requests() []DownloadRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]DownloadRequest(nil), m.requests...)
}

func generateMockCloses(basePrice float64, end time.Time, count int) []model.DailyClose {
	closes := make([]model.DailyClose, 0, count)
	for d := end; len(closes) < count; d = d.AddDate(0, 0, -1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		closes = append(closes, model.DailyClose{Day: model.DayOf(d)})
	}
	// closes were collected newest first
	for i, j := 0, len(closes)-1; i < j; i, j = i+1, j-1 {
		closes[i], closes[j] = closes[j], closes[i]
	}
	for i := range closes {
		closes[i].Close = basePrice * (1 + float64(i-count/2)*0.001)
	}
	return closes
}

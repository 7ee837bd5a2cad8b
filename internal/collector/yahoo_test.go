package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldLens/internal/model"
)

// Sessions 2024-01-02 through 2024-01-04 at 14:30 UTC; the middle bar is null.
const chartBody = `{"chart":{"result":[{"meta":{"gmtoffset":-18000},
"timestamp":[1704205800,1704292200,1704378600],
"indicators":{"quote":[{"close":[101.5,null,103.25]}]}}],"error":null}}`

// A bar at 2024-01-03 02:00 UTC is still 2024-01-02 in New York.
const lateBarBody = `{"chart":{"result":[{"meta":{"gmtoffset":-18000},
"timestamp":[1704247200],
"indicators":{"quote":[{"close":[50]}]}}],"error":null}}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *YahooProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewYahooProvider(srv.URL, "", 5*time.Second, 1000)
}

func TestYahoo_History(t *testing.T) {
	var gotQuery string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/v8/finance/chart/^GSPC", r.URL.Path)
		fmt.Fprint(w, chartBody)
	})

	closes, err := p.History(context.Background(), "^GSPC")
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "range=max")
	assert.Contains(t, gotQuery, "interval=1d")
	assert.Equal(t, []model.DailyClose{
		{Day: "2024-01-02", Close: 101.5},
		{Day: "2024-01-04", Close: 103.25},
	}, closes)
}

func TestYahoo_ExchangeLocalDate(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, lateBarBody)
	})
	closes, err := p.History(context.Background(), "^GSPC")
	require.NoError(t, err)
	require.Len(t, closes, 1)
	assert.Equal(t, model.Day("2024-01-02"), closes[0].Day)
}

func TestYahoo_DownloadSkipsUnknownSymbols(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/GONE") {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
			return
		}
		assert.Equal(t, "1wk", r.URL.Query().Get("interval"))
		assert.Equal(t, "10y", r.URL.Query().Get("range"))
		fmt.Fprint(w, chartBody)
	})

	table, err := p.Download(context.Background(), []string{"AAPL", "GONE"}, DownloadRequest{Range: "10y", Interval: "1wk"})
	require.NoError(t, err)
	v, ok := table.Close("AAPL", "2024-01-04")
	assert.True(t, ok)
	assert.Equal(t, 103.25, v)
	_, ok = table["GONE"]
	assert.False(t, ok)
}

func TestYahoo_DownloadStartUsesPeriods(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "1704067200", q.Get("period1")) // 2024-01-01
		assert.NotEmpty(t, q.Get("period2"))
		assert.Empty(t, q.Get("range"))
		fmt.Fprint(w, chartBody)
	})
	_, err := p.Download(context.Background(), []string{"AAPL"}, DownloadRequest{Start: "2024-01-01"})
	require.NoError(t, err)
}

func TestYahoo_DownloadFailsChunkOnServerError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/MSFT") {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, chartBody)
	})
	_, err := p.Download(context.Background(), []string{"AAPL", "MSFT"}, DownloadRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MSFT")
	assert.NotErrorIs(t, err, ErrSymbolNotFound)
}

func TestYahoo_EmptyResultIsNotFound(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[],"error":null}}`)
	})
	_, err := p.History(context.Background(), "^GSPC")
	assert.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestYahoo_DownloadRangeEndsAtRequestEnd(t *testing.T) {
	end := time.Date(2024, 1, 8, 22, 0, 0, 0, time.UTC)
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Empty(t, q.Get("range"))
		assert.Equal(t, strconv.FormatInt(end.AddDate(0, 0, -5).Unix(), 10), q.Get("period1"))
		assert.Equal(t, strconv.FormatInt(end.Unix(), 10), q.Get("period2"))
		fmt.Fprint(w, chartBody)
	})
	_, err := p.Download(context.Background(), []string{"AAPL"}, DownloadRequest{Range: "5d", Interval: "1d", End: end})
	require.NoError(t, err)
}

func TestRangeStart(t *testing.T) {
	end := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"5d", time.Date(2024, 6, 23, 0, 0, 0, 0, time.UTC), true},
		{"1wk", time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC), true},
		{"6mo", time.Date(2023, 12, 28, 0, 0, 0, 0, time.UTC), true},
		{"10y", time.Date(2014, 6, 28, 0, 0, 0, 0, time.UTC), true},
		{"max", time.Time{}, false},
		{"ytd", time.Time{}, false},
		{"0d", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := rangeStart(end, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

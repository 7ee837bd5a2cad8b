package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"GoldLens/internal/logger"
	"GoldLens/internal/model"
)

// DefaultYahooURL is the public chart API host.
const DefaultYahooURL = "https://query1.finance.yahoo.com"

// YahooProvider implements PriceProvider and calendar.HistorySource using
// the Yahoo Finance chart API.
type YahooProvider struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
	Limiter   *rate.Limiter
}

// NewYahooProvider creates a Yahoo provider with optional proxy support.
// rps bounds the request rate across all goroutines sharing the provider.
func NewYahooProvider(baseURL, proxyURL string, timeout time.Duration, rps float64) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = DefaultYahooURL
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &YahooProvider{
		BaseURL:   baseURL,
		UserAgent: "Mozilla/5.0",
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		Limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (f *YahooProvider) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				GMTOffset int64 `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History returns the full daily history of symbol.
func (f *YahooProvider) History(ctx context.Context, symbol string) ([]model.DailyClose, error) {
	q := url.Values{}
	q.Set("range", "max")
	q.Set("interval", "1d")
	return f.fetchCloses(ctx, symbol, q)
}

// Download fetches every symbol of the batch. Symbols the provider does not
// know are skipped; any other failure fails the whole batch.
func (f *YahooProvider) Download(ctx context.Context, symbols []string, req DownloadRequest) (model.PriceTable, error) {
	q := url.Values{}
	interval := req.Interval
	if interval == "" {
		interval = "1d"
	}
	q.Set("interval", interval)
	end := req.End
	if end.IsZero() {
		end = time.Now()
	}
	setPeriod := func(start time.Time) {
		q.Set("period1", strconv.FormatInt(start.Unix(), 10))
		q.Set("period2", strconv.FormatInt(end.Unix(), 10))
	}
	switch {
	case req.Start != "":
		setPeriod(req.Start.Time())
	case req.Range != "" && !req.End.IsZero():
		if start, ok := rangeStart(req.End, req.Range); ok {
			setPeriod(start)
		} else {
			q.Set("range", req.Range)
		}
	case req.Range != "":
		q.Set("range", req.Range)
	default:
		q.Set("range", "1y")
	}

	table := make(model.PriceTable, len(symbols))
	for _, symbol := range symbols {
		closes, err := f.fetchCloses(ctx, symbol, q)
		if errors.Is(err, ErrSymbolNotFound) {
			logger.L.Warnf("yahoo: %s skipped: %v", symbol, err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", symbol, err)
		}
		for _, c := range closes {
			table.Set(symbol, c.Day, c.Close)
		}
	}
	return table, nil
}

func (f *YahooProvider) fetchCloses(ctx context.Context, symbol string, q url.Values) ([]model.DailyClose, error) {
	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("yahoo rate limit: %w", err)
		}
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", f.BaseURL, url.PathEscape(symbol), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, ErrSymbolNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("yahoo %s: %s: %w", symbol, chart.Chart.Error.Description, ErrSymbolNotFound)
		}
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo %s: no data returned: %w", symbol, ErrSymbolNotFound)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	closes := make([]model.DailyClose, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue // null bars (holidays, halted sessions)
		}
		// Shift into exchange-local time before dropping the time of day.
		local := time.Unix(ts+result.Meta.GMTOffset, 0).UTC()
		closes = append(closes, model.DailyClose{Day: model.DayOf(local), Close: *quote.Close[i]})
	}

	sort.SliceStable(closes, func(i, j int) bool { return closes[i].Day < closes[j].Day })
	return closes, nil
}

// rangeStart converts a chart range such as "5d", "1wk", "6mo" or "10y" into
// the start of the window ending at end. "max" and "ytd" are not converted.
func rangeStart(end time.Time, r string) (time.Time, bool) {
	units := []struct {
		suffix        string
		years, months int
		days          int
	}{
		{"wk", 0, 0, 7},
		{"mo", 0, 1, 0},
		{"d", 0, 0, 1},
		{"y", 1, 0, 0},
	}
	for _, u := range units {
		if !strings.HasSuffix(r, u.suffix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(r, u.suffix))
		if err != nil || n <= 0 {
			return time.Time{}, false
		}
		return end.AddDate(-n*u.years, -n*u.months, -n*u.days), true
	}
	return time.Time{}, false
}

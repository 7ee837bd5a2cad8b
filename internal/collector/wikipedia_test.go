package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldLens/internal/model"
)

const constituentsPage = `<html><body>
<table class="wikitable"><tr><td>not</td><td>this one</td></tr></table>
<table class="wikitable sortable" id="constituents">
<tbody>
<tr><th>Symbol</th><th>Security</th><th>GICS Sector</th></tr>
<tr><td><a href="#">MMM</a></td><td><a href="#">3M</a></td><td>Industrials</td></tr>
<tr><td><a href="#">BRK.B</a>
</td><td><a href="#">Berkshire Hathaway</a></td><td>Financials</td></tr>
<tr><td><a href="#">AOS</a></td><td>A. O. Smith</td><td>Industrials</td></tr>
</tbody></table></body></html>`

func TestWikipediaLister_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		fmt.Fprint(w, constituentsPage)
	}))
	defer srv.Close()

	got, err := NewWikipediaLister(srv.URL, 5*time.Second).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Listing{
		{Symbol: "MMM", Name: "3M"},
		{Symbol: "BRK.B", Name: "Berkshire Hathaway"},
		{Symbol: "AOS", Name: "A. O. Smith"},
	}, got)
}

func TestWikipediaLister_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/down" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "<html><body><p>no tables</p></body></html>")
	}))
	defer srv.Close()

	_, err := NewWikipediaLister(srv.URL+"/down", time.Second).List(context.Background())
	assert.Error(t, err)
	_, err = NewWikipediaLister(srv.URL+"/empty", time.Second).List(context.Background())
	assert.Error(t, err)
}

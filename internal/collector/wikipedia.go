package collector

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"GoldLens/internal/model"
)

// DefaultSP500URL is the Wikipedia page listing S&P 500 constituents.
const DefaultSP500URL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

// WikipediaLister scrapes the S&P 500 constituents table.
type WikipediaLister struct {
	URL       string
	UserAgent string
	Client    *http.Client
}

// NewWikipediaLister creates a lister for pageURL.
func NewWikipediaLister(pageURL string, timeout time.Duration) *WikipediaLister {
	if pageURL == "" {
		pageURL = DefaultSP500URL
	}
	return &WikipediaLister{
		URL:       pageURL,
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
		Client:    &http.Client{Timeout: timeout},
	}
}

// List returns (symbol, security) pairs in page order. Symbols keep the
// page's own separator convention.
func (w *WikipediaLister) List(ctx context.Context) ([]model.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", w.UserAgent)

	resp, err := w.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch constituents: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch constituents: status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse constituents page: %w", err)
	}
	listings := parseConstituents(doc)
	if len(listings) == 0 {
		return nil, fmt.Errorf("constituents table not found")
	}
	return listings, nil
}

// parseConstituents reads the table with id "constituents", falling back to
// the first wikitable on the page.
func parseConstituents(doc *html.Node) []model.Listing {
	table := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "table" && attr(n, "id") == "constituents"
	})
	if table == nil {
		table = findNode(doc, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "table" &&
				strings.Contains(attr(n, "class"), "wikitable")
		})
	}
	if table == nil {
		return nil
	}

	var out []model.Listing
	walk(table, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "tr" {
			return
		}
		var cells []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "td" {
				cells = append(cells, strings.TrimSpace(text(c)))
			}
		}
		if len(cells) < 2 || cells[0] == "" {
			return // header row or malformed
		}
		out = append(out, model.Listing{Symbol: cells[0], Name: cells[1]})
	})
	return out
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

package collector

import (
	"context"
	"errors"
	"time"

	"GoldLens/internal/model"
)

var (
	// ErrSymbolNotFound means the provider has no data for a symbol. The
	// symbol is skipped; it does not fail the chunk it belongs to.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrNoPriceData means every chunk of a retrieval failed.
	ErrNoPriceData = errors.New("no price data retrieved")
)

// DownloadRequest selects the window and bar size of a download. Start wins
// over Range when both are set. End closes the window; the zero value means
// now. With End set, Range counts back from End instead of from now.
type DownloadRequest struct {
	Start    model.Day
	End      time.Time
	Range    string
	Interval string
}

// PriceProvider downloads closes for a batch of symbols, normalized to the
// canonical symbol -> day -> close shape.
type PriceProvider interface {
	Download(ctx context.Context, symbols []string, req DownloadRequest) (model.PriceTable, error)
	Name() string
}

// SymbolLister returns the constituents of a reference index.
type SymbolLister interface {
	List(ctx context.Context) ([]model.Listing, error)
}

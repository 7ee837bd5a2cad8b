package recorder

import "GoldLens/internal/model"

// Artifact file names, fixed by the front-end.
const (
	TablesFile     = "Data.json"
	FastFile       = "FastData.json"
	TickersFile    = "tickers.json"
	GoldPricesBase = "gold_prices"
)

// Recorder persists the artifacts of one run.
type Recorder interface {
	WriteTables(set model.TableSet) error
	WriteFast(set model.TableSet) error
	WriteTickers(tickers []model.TickerInfo) error
	WriteGoldPrices(rows []model.NormalizedRow) error
	Close() error
}

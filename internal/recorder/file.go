package recorder

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"GoldLens/internal/logger"
	"GoldLens/internal/model"
)

// FileRecorder writes artifacts into a directory. JSON artifacts are always
// written; the gold table is additionally rendered as CSV and XLSX when those
// formats are enabled.
type FileRecorder struct {
	Dir  string
	CSV  bool
	XLSX bool
}

// NewFileRecorder creates dir if needed.
func NewFileRecorder(dir string, csv, xlsx bool) (*FileRecorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	logger.L.Infof("file recorder writing to %s (csv=%v xlsx=%v)", dir, csv, xlsx)
	return &FileRecorder{Dir: dir, CSV: csv, XLSX: xlsx}, nil
}

func (f *FileRecorder) WriteTables(set model.TableSet) error {
	return f.writeJSON(TablesFile, set)
}

func (f *FileRecorder) WriteFast(set model.TableSet) error {
	return f.writeJSON(FastFile, set)
}

func (f *FileRecorder) WriteTickers(tickers []model.TickerInfo) error {
	if tickers == nil {
		tickers = []model.TickerInfo{}
	}
	return f.writeJSON(TickersFile, tickers)
}

// WriteGoldPrices writes the long-format gold table in every enabled format.
func (f *FileRecorder) WriteGoldPrices(rows []model.NormalizedRow) error {
	if rows == nil {
		rows = []model.NormalizedRow{}
	}
	if err := f.writeJSON(GoldPricesBase+".json", rows); err != nil {
		return err
	}
	if f.CSV {
		if err := f.write(GoldPricesBase+".csv", func(w io.Writer) error { return encodeGoldCSV(w, rows) }); err != nil {
			return err
		}
	}
	if f.XLSX {
		if err := f.write(GoldPricesBase+".xlsx", func(w io.Writer) error { return encodeGoldXLSX(w, rows) }); err != nil {
			return err
		}
	}
	return nil
}

func (f *FileRecorder) Close() error { return nil }

func (f *FileRecorder) writeJSON(name string, v any) error {
	return f.write(name, func(w io.Writer) error {
		return json.NewEncoder(w).Encode(v)
	})
}

// write renders into a temp file in Dir and renames it over name, so readers
// never see a partial artifact.
func (f *FileRecorder) write(name string, render func(io.Writer) error) error {
	tmp, err := os.CreateTemp(f.Dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := render(bw); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	path := filepath.Join(f.Dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	logger.L.Infof("wrote %s", path)
	return nil
}

var goldHeader = []string{"date", "ticker", "price_usd", "price_gold", "type"}

func encodeGoldCSV(w io.Writer, rows []model.NormalizedRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(goldHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Date.String(),
			r.Ticker,
			strconv.FormatFloat(r.PriceUSD, 'f', -1, 64),
			strconv.FormatFloat(r.PriceGold, 'f', -1, 64),
			string(r.Type),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

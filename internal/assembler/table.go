package assembler

import (
	"sort"

	"GoldLens/internal/calendar"
	"GoldLens/internal/logger"
	"GoldLens/internal/model"
)

// Columns returns "Date" followed by the asset keys in ascending byte order.
func Columns(assets []model.AssetKey) []string {
	keys := make([]string, 0, len(assets))
	for _, a := range assets {
		keys = append(keys, a.Key)
	}
	sort.Strings(keys)
	return append([]string{model.DateColumn}, keys...)
}

// Assemble builds one table: a row per sampled day, a cell per asset. Rows
// with absent cells are kept.
func Assemble(days []model.Day, assets []model.AssetKey, tables []model.PriceTable) model.Table {
	columns := Columns(assets)
	symbols := make(map[string]string, len(assets))
	for _, a := range assets {
		symbols[a.Key] = a.Symbol
	}

	rows := make([]model.Row, 0, len(days))
	for _, day := range days {
		cells := make([]model.Price, len(columns)-1)
		for i, key := range columns[1:] {
			cells[i] = Resolve(tables, symbols[key], day)
		}
		rows = append(rows, model.Row{Date: day, Cells: cells})
	}
	return model.Table{Columns: columns, Rows: rows}
}

// AssembleAll builds one table per sample, keyed by timeframe label. Every
// table shares the same column order.
func AssembleAll(samples []calendar.Sample, assets []model.AssetKey, tables []model.PriceTable) model.TableSet {
	set := make(model.TableSet, len(samples))
	for _, s := range samples {
		t := Assemble(s.Days, assets, tables)
		logger.L.Infof("timeframe %s: %d rows, %d absent cells", s.Timeframe.Label, len(t.Rows), AbsentCells(t))
		set[s.Timeframe.Label] = t
	}
	return set
}

// AbsentCells counts the cells of t with no price.
func AbsentCells(t model.Table) int {
	n := 0
	for _, r := range t.Rows {
		for _, c := range r.Cells {
			if !c.Valid {
				n++
			}
		}
	}
	return n
}

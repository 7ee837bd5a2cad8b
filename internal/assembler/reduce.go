package assembler

import (
	"GoldLens/internal/logger"
	"GoldLens/internal/model"
)

// Reduce projects the timeframe table of set onto Date plus columns, keeping
// row order. If the timeframe or any column is missing the result is an
// empty set; the reduced view is best effort and never an error.
func Reduce(set model.TableSet, timeframe string, columns []string) model.TableSet {
	src, ok := set[timeframe]
	if !ok {
		logger.L.Warnf("reduced view: timeframe %s not assembled", timeframe)
		return model.TableSet{}
	}

	idx := make([]int, 0, len(columns))
	for _, c := range columns {
		i := src.ColumnIndex(c)
		if i < 1 {
			logger.L.Warnf("reduced view: column %s missing from %s", c, timeframe)
			return model.TableSet{}
		}
		idx = append(idx, i)
	}

	rows := make([]model.Row, 0, len(src.Rows))
	for _, r := range src.Rows {
		cells := make([]model.Price, len(idx))
		for j, i := range idx {
			cells[j] = r.Cells[i-1]
		}
		rows = append(rows, model.Row{Date: r.Date, Cells: cells})
	}

	out := append([]string{model.DateColumn}, columns...)
	return model.TableSet{timeframe: {Columns: out, Rows: rows}}
}

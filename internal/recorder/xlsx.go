package recorder

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"GoldLens/internal/model"
)

const goldSheet = "GoldPrices"

func encodeGoldXLSX(w io.Writer, rows []model.NormalizedRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), goldSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(goldHeader))
	for i, h := range goldHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(goldSheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Date.String(), r.Ticker, r.PriceUSD, r.PriceGold, string(r.Type)}
		if err := f.SetSheetRow(goldSheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(goldSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}

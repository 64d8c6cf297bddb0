// Package report renders inventory snapshots as spreadsheets.
package report

import (
	"fmt"
	"io"
	"time"

	"vending-machine/internal/core/domain"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the stock table.
const SheetName = "Stock"

var header = []interface{}{"Name", "Price", "Quantity", "Value"}

// WriteStock writes inv as an XLSX workbook: one row per item in inventory
// order, then a totals row. Prices and values are numeric cells in pounds.
func WriteStock(w io.Writer, inv *domain.Inventory, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	pounds, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("create money style: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "D1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	var (
		units int
		value domain.Money
	)
	row := 2
	for _, item := range inv.Items() {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{
			item.Name,
			item.Price.Decimal().InexactFloat64(),
			item.Quantity,
			item.StockValue().Decimal().InexactFloat64(),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write item %q: %w", item.Name, err)
		}
		units += item.Quantity
		value += item.StockValue()
		row++
	}

	cell, _ := excelize.CoordinatesToCellName(1, row)
	totals := []interface{}{"Total", nil, units, value.Decimal().InexactFloat64()}
	if err := f.SetSheetRow(SheetName, cell, &totals); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(4, row)
	if err := f.SetCellStyle(SheetName, cell, last, bold); err != nil {
		return fmt.Errorf("style totals: %w", err)
	}

	if row > 2 {
		first, _ := excelize.CoordinatesToCellName(2, 2)
		end, _ := excelize.CoordinatesToCellName(2, row-1)
		if err := f.SetCellStyle(SheetName, first, end, pounds); err != nil {
			return fmt.Errorf("style prices: %w", err)
		}
	}
	valueFirst, _ := excelize.CoordinatesToCellName(4, 2)
	if err := f.SetCellStyle(SheetName, valueFirst, last, pounds); err != nil {
		return fmt.Errorf("style values: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "A", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "Vending machine stock",
		Created: generatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("set document properties: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Package reporting exports order listings to Excel workbooks.
package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
)

// orderColumns is the header row of the Orders sheet.
var orderColumns = []string{
	"Order ID", "Symbol", "Side", "Type", "Quantity",
	"Price", "Trigger Price", "Status", "Time In Force", "Reduce Only", "Created",
}

// WriteOrdersXLSX writes the given orders to an Excel workbook at path,
// creating parent directories as needed.
func WriteOrdersXLSX(orders []exchange.Order, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const sheet = "Orders"
	fx.SetSheetName(fx.GetSheetName(0), sheet)

	headerStyle, err := fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2F4F4F"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range orderColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(orderColumns), 1)
	if err := fx.SetCellStyle(sheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return err
	}

	for rowIdx, ord := range orders {
		created := ""
		if !ord.CreatedTime.IsZero() {
			created = ord.CreatedTime.Format("2006-01-02 15:04:05")
		}

		values := []interface{}{
			ord.OrderID, ord.Symbol, string(ord.Side), string(ord.Type), ord.OrigQty,
			ord.Price, ord.StopPrice, string(ord.Status), string(ord.TimeInForce), ord.ReduceOnly, created,
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := fx.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := fx.SetColWidth(sheet, "A", "K", 18); err != nil {
		return err
	}

	if err := fx.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	return nil
}

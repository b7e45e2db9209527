package formats

import (
	"fmt"
	"io"

	"github.com/JonMunkholm/tohands-inventory/internal/core"
	"github.com/JonMunkholm/tohands-inventory/internal/schema"
	"github.com/xuri/excelize/v2"
)

// XLSXSheet is the worksheet the rows are written to.
const XLSXSheet = "Sheet1"

func init() {
	registerXLSX()
}

func registerXLSX() {
	core.Register(core.ExportFormat{
		Key:         "xlsx",
		Label:       "Download Excel File",
		Extension:   "xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Write:       writeXLSX,
	})
}

// writeXLSX writes the same header and rows as the CSV. Prices and quantity
// are numeric cells holding the exact decimal text, so no digits are lost
// in the file; spreadsheet apps still compute with 15 significant digits.
func writeXLSX(w io.Writer, rows []core.InventoryRow) error {
	f := excelize.NewFile()
	defer f.Close()

	for col, name := range schema.Header() {
		if err := setCell(f, col+1, 1, name); err != nil {
			return err
		}
	}

	for i, row := range rows {
		for col, value := range row.Record() {
			var err error
			switch schema.TohandsFieldSpecs[col].Type {
			case schema.FieldMoney:
				err = setNumber(f, col+1, i+2, value)
			case schema.FieldQuantity:
				err = setCell(f, col+1, i+2, row.Quantity)
			default:
				err = setCell(f, col+1, i+2, value)
			}
			if err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("xlsx cell (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(XLSXSheet, cell, value); err != nil {
		return fmt.Errorf("xlsx set %s: %w", cell, err)
	}
	return nil
}

// setNumber stores numeric text as-is in an untyped cell, which spreadsheet
// apps read as a number.
func setNumber(f *excelize.File, col, row int, text string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("xlsx cell (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellDefault(XLSXSheet, cell, text); err != nil {
		return fmt.Errorf("xlsx set %s: %w", cell, err)
	}
	return nil
}

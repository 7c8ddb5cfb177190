package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes a single-sheet workbook. Numeric cells stay numeric.
func WriteXLSX(w io.Writer, sheet Sheet) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	name := sheet.Name
	if name == "" {
		name = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("export: sheet name: %w", err)
	}

	header := make([]any, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := setRow(f, name, 1, header); err != nil {
		return err
	}
	for i, row := range sheet.Rows {
		if err := setRow(f, name, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("export: row %d: %w", row, err)
	}
	return nil
}

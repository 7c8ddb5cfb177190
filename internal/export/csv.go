package export

import (
	"encoding/csv"
	"io"
)

// WriteCSV emits the sheet header and rows as CSV.
func WriteCSV(w io.Writer, sheet Sheet) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(sheet.Header); err != nil {
		return err
	}
	for _, record := range sheet.Strings() {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/scaledesk/scaledesk/internal/platform/httpx"
)

// Format selects the file encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ErrFormat reports an unsupported format parameter.
var ErrFormat = fmt.Errorf("export: unsupported format: %w", httpx.ErrValidation)

// ParseFormat reads a format parameter, defaulting to XLSX.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", ErrFormat
	}
}

// ContentType is the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Encode renders sheet in format f.
func Encode(f Format, sheet Sheet) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case FormatCSV:
		err = WriteCSV(&buf, sheet)
	case FormatXLSX:
		err = WriteXLSX(&buf, sheet)
	default:
		err = ErrFormat
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName joins parts with underscores and appends the format extension.
func FileName(f Format, parts ...string) string {
	return strings.Join(parts, "_") + "." + string(f)
}

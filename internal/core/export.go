package core

// export.go serializes an inventory table into the Tohands CSV layout.
//
// The CSV is produced in two shapes: streamed to a writer for the download
// route, and as a base64 data URI embedded straight into the page link so the
// browser can save the file without another request.

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/JonMunkholm/tohands-inventory/internal/schema"
)

// DefaultFormat is the export format the Tohands tool imports.
const DefaultFormat = "csv"

// CSVContentType is the media type used for CSV downloads.
const CSVContentType = "text/csv; charset=utf-8"

// WriteCSV writes the header row followed by one record per row.
// An empty slice yields a header-only document.
func WriteCSV(w io.Writer, rows []InventoryRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(schema.Header()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ExportCSV returns the CSV document for rows as bytes.
func ExportCSV(rows []InventoryRow) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVDataURI returns the CSV document as a base64 data URI suitable for an
// <a download> link.
func CSVDataURI(rows []InventoryRow) (string, error) {
	payload, err := ExportCSV(rows)
	if err != nil {
		return "", err
	}
	return "data:file/csv;base64," + base64.StdEncoding.EncodeToString(payload), nil
}

// CSVFileName is the name the downloaded CSV is saved under.
func CSVFileName() string {
	return schema.FileBase + "." + DefaultFormat
}

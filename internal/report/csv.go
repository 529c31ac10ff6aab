package report

import (
	"encoding/csv"
	"fmt"
	"os"
)

// utf8BOM keeps spreadsheet tools from misreading accented vendor and
// brand names in the exported files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes one delimited report file: UTF-8 with BOM, comma
// separated, the header always present even with zero data rows. Rows may
// be ragged; shorter rows are written as-is.
func WriteCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("création de %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

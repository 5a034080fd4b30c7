package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// EncodeCSV serializes the dataset as delimited text, header row first.
// A zero comma encodes with ','.
func EncodeCSV(ds *Dataset, comma rune) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if comma != 0 {
		w.Comma = comma
	}
	if err := w.Write(ds.Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, row := range ds.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

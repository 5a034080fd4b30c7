package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/KestrelData/tabsum-cli/internal/dataset"
)

// loadCSV reads delimited text. The first record is the header; ragged
// data rows are tolerated here and normalized by the dataset constructor.
// Fields are kept exactly as decoded, with no trimming; the classifier
// owns whitespace handling.
func loadCSV(path string, opt Options) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty input: %s", path)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	every := opt.progressEvery()
	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, rec)
		if opt.MaxRows > 0 && len(rows) >= opt.MaxRows {
			break
		}
		if opt.Progress != nil && len(rows)%every == 0 {
			opt.Progress(len(rows))
		}
	}
	return dataset.New(header, rows), nil
}

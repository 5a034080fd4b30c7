// Package loader reads tabular files into datasets. The analytics packages
// never touch files; whatever decoding happens, happens here.
package loader

import (
	"path/filepath"
	"strings"

	"github.com/KestrelData/tabsum-cli/internal/dataset"
)

// defaultProgressEvery is the reporting cadence for large files.
const defaultProgressEvery = 50000

// Options controls how tabular files are read.
type Options struct {
	// Delimiter for delimited text. If 0, inferred from the extension.
	Delimiter rune
	// MaxRows caps data rows read; 0 means unlimited.
	MaxRows int
	// Progress, when set, fires after every ProgressEvery data rows.
	Progress func(rows int)
	// ProgressEvery defaults to 50000.
	ProgressEvery int
}

// Load reads a tabular file into a Dataset. XLSX workbooks are unpacked
// directly; everything else is treated as delimited text, with the
// delimiter sniffed from the extension unless set explicitly.
func Load(path string, opt Options) (*dataset.Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadXLSX(path, opt)
	}
	return loadCSV(path, opt)
}

func sniffDelimiter(path string) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return '\t'
	}
	return ','
}

func (o Options) progressEvery() int {
	if o.ProgressEvery > 0 {
		return o.ProgressEvery
	}
	return defaultProgressEvery
}

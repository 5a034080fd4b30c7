package loader

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/KestrelData/tabsum-cli/internal/dataset"
)

// loadXLSX reads the first worksheet of a workbook as a table. Only the
// OOXML surface needed for tabular extraction is implemented: shared
// strings, inline strings and stored cell values. Cell formatting and
// formula text are ignored; a formula cell contributes its stored result.
func loadXLSX(path string, opt Options) (*dataset.Dataset, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer zr.Close()

	sheet, err := firstSheetPath(&zr.Reader)
	if err != nil {
		return nil, err
	}
	sheetXML := zipEntry(&zr.Reader, sheet)
	if sheetXML == nil {
		return nil, fmt.Errorf("xlsx: worksheet %s missing", sheet)
	}
	shared := readSharedStrings(zipEntry(&zr.Reader, "xl/sharedStrings.xml"))

	rows := newRowReader(sheetXML, shared)
	header, ok := rows.Next()
	if !ok || len(header) == 0 {
		return nil, fmt.Errorf("empty input: %s", path)
	}

	every := opt.progressEvery()
	var data [][]string
	for {
		row, ok := rows.Next()
		if !ok {
			break
		}
		data = append(data, row)
		if opt.MaxRows > 0 && len(data) >= opt.MaxRows {
			break
		}
		if opt.Progress != nil && len(data)%every == 0 {
			opt.Progress(len(data))
		}
	}
	return dataset.New(header, data), nil
}

// firstSheetPath resolves the workbook's first sheet to its zip entry via
// the relationship table, falling back to the conventional location.
func firstSheetPath(zr *zip.Reader) (string, error) {
	wb := zipEntry(zr, "xl/workbook.xml")
	if wb == nil {
		return "", errors.New("xlsx: workbook.xml missing")
	}
	rids := sheetRelIDs(wb)
	if len(rids) == 0 {
		return "", errors.New("xlsx: workbook has no sheets")
	}
	rels := readRelationships(zipEntry(zr, "xl/_rels/workbook.xml.rels"))
	if target, ok := rels[rids[0]]; ok {
		return sheetZipPath(target), nil
	}
	return "xl/worksheets/sheet1.xml", nil
}

func zipEntry(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		b, _ := io.ReadAll(rc)
		return b
	}
	return nil
}

// sheetRelIDs lists the r:id of every <sheet> in workbook order.
func sheetRelIDs(data []byte) []string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "sheet" {
			continue
		}
		for _, a := range se.Attr {
			if a.Name.Local == "id" {
				out = append(out, a.Value)
			}
		}
	}
}

// readRelationships maps relationship ids to their targets.
func readRelationships(data []byte) map[string]string {
	out := map[string]string{}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		var id, target string
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "Id":
				id = a.Value
			case "Target":
				target = a.Value
			}
		}
		if id != "" && target != "" {
			out[id] = target
		}
	}
}

// sheetZipPath converts a relationship target to a zip entry path.
// Targets may carry a leading slash or omit the xl/ prefix.
func sheetZipPath(target string) string {
	target = strings.TrimPrefix(target, "/")
	if strings.HasPrefix(target, "xl/") {
		return target
	}
	return path.Join("xl", target)
}

// readSharedStrings collects the workbook's shared string table in index
// order.
func readSharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	var buf strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "si":
				buf.Reset()
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "si":
				out = append(out, buf.String())
			}
		case xml.CharData:
			if inText {
				buf.Write(el)
			}
		}
	}
}

// rowReader streams worksheet rows. Cells land at the column index named
// by their A1-style reference, so gaps from omitted cells stay empty.
type rowReader struct {
	dec    *xml.Decoder
	shared []string
	cur    []string
	width  int
}

func newRowReader(sheetXML []byte, shared []string) *rowReader {
	return &rowReader{dec: xml.NewDecoder(bytes.NewReader(sheetXML)), shared: shared}
}

// Next returns the next row, or false when the sheet is exhausted.
func (r *rowReader) Next() ([]string, bool) {
	inRow := false
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, false
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "row":
				inRow = true
				r.cur = nil
				r.width = 0
			case "c":
				if !inRow {
					continue
				}
				var ref, typ string
				for _, a := range el.Attr {
					switch a.Name.Local {
					case "r":
						ref = a.Value
					case "t":
						typ = a.Value
					}
				}
				col := columnIndex(ref)
				if col < 0 {
					col = r.width
				}
				if col+1 > r.width {
					r.width = col + 1
				}
				if len(r.cur) <= col {
					grown := make([]string, col+1)
					copy(grown, r.cur)
					r.cur = grown
				}
				r.cur[col] = r.cellValue(typ)
			}
		case xml.EndElement:
			if el.Name.Local == "row" {
				if len(r.cur) < r.width {
					grown := make([]string, r.width)
					copy(grown, r.cur)
					r.cur = grown
				}
				return r.cur, true
			}
		}
	}
}

// cellValue consumes tokens to the end of the cell, capturing <v> content
// or an inline string's <t>.
func (r *rowReader) cellValue(typ string) string {
	var val string
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return val
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "v" || el.Name.Local == "t" {
				val = r.textUntil(el.Name.Local)
			}
		case xml.EndElement:
			if el.Name.Local == "c" {
				if typ == "s" {
					if i := leadingInt(val); i >= 0 && i < len(r.shared) {
						return r.shared[i]
					}
					return ""
				}
				return val
			}
		}
	}
}

func (r *rowReader) textUntil(close string) string {
	var sb strings.Builder
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return sb.String()
		}
		switch el := tok.(type) {
		case xml.EndElement:
			if el.Name.Local == close {
				return sb.String()
			}
		case xml.CharData:
			sb.Write(el)
		}
	}
}

// columnIndex converts an A1-style reference to a 0-based column index,
// or -1 when the reference has no letters.
func columnIndex(ref string) int {
	i := 0
	for i < len(ref) && isAlpha(ref[i]) {
		i++
	}
	if i == 0 {
		return -1
	}
	idx := 0
	for _, c := range strings.ToUpper(ref[:i]) {
		idx = idx*26 + int(c-'A'+1)
	}
	return idx - 1
}

func isAlpha(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

// leadingInt parses the leading digit run of s, -1 when there is none.
func leadingInt(s string) int {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return -1
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

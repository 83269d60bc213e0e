package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type xlsxFormat struct{}

func (xlsxFormat) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

func (xlsxFormat) Open(p string, opt Options) (Source, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	src, err := NewXLSXSource(b, opt.SheetName, opt.SheetIndex)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
	}
	return src, nil
}

// ErrSheetNotFound is returned when a requested sheet is absent from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// NewXLSXSource reads rows from the selected sheet of an in-memory workbook.
// If sheetName is empty, sheetIndex (1-based) selects the sheet; values <= 0 mean the first one.
func NewXLSXSource(data []byte, sheetName string, sheetIndex int) (Source, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	wb := workbook{
		sheets: parseWorkbook(readZipFile(zr, "xl/workbook.xml")),
		rels:   parseRelationships(readZipFile(zr, "xl/_rels/workbook.xml.rels")),
	}
	target, err := wb.resolve(sheetName, sheetIndex)
	if err != nil {
		return nil, err
	}
	sheetXML := readZipFile(zr, target)
	if sheetXML == nil {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, target)
	}
	shared := parseSharedStrings(readZipFile(zr, "xl/sharedStrings.xml"))
	return &xlsxSource{rows: newSheetRowReader(sheetXML, shared)}, nil
}

type xlsxSource struct {
	rows *sheetRowReader
}

func (s *xlsxSource) Read() ([]string, error) {
	row, ok := s.rows.Next()
	if !ok {
		return nil, io.EOF
	}
	return row, nil
}

func (s *xlsxSource) Close() error { return nil }

type workbook struct {
	sheets []wbSheet
	rels   map[string]string
}

type wbSheet struct {
	Name    string
	SheetID int
	RID     string
}

func (wb workbook) resolve(sheetName string, sheetIndex int) (string, error) {
	if sheetName != "" {
		for _, s := range wb.sheets {
			if strings.EqualFold(s.Name, sheetName) {
				if rel, ok := wb.rels[s.RID]; ok {
					return normalizeRelPath(rel), nil
				}
				break
			}
		}
		names := make([]string, len(wb.sheets))
		for i, s := range wb.sheets {
			names[i] = s.Name
		}
		return "", fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, sheetName, strings.Join(names, ", "))
	}
	idx := sheetIndex
	if idx <= 0 {
		idx = 1
	}
	for _, s := range wb.sheets {
		if s.SheetID == idx {
			if rel, ok := wb.rels[s.RID]; ok {
				return normalizeRelPath(rel), nil
			}
		}
	}
	// guess by worksheets/sheetN.xml
	return path.Join("xl", "worksheets", fmt.Sprintf("sheet%d.xml", idx)), nil
}

// parseWorkbook extracts sheet entries with names and relationship ids.
func parseWorkbook(data []byte) []wbSheet {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var sheets []wbSheet
	for {
		tok, err := dec.Token()
		if err != nil {
			return sheets
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "sheet" {
			continue
		}
		var s wbSheet
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "name":
				s.Name = a.Value
			case "sheetId":
				s.SheetID = atoiSafe(a.Value)
			case "id":
				s.RID = a.Value // r: namespace
			}
		}
		sheets = append(sheets, s)
	}
}

// parseRelationships returns map[r:id]Target.
func parseRelationships(data []byte) map[string]string {
	out := map[string]string{}
	if len(data) == 0 {
		return out
	}
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

func readZipFile(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil
			}
			defer rc.Close()
			b, _ := io.ReadAll(rc)
			return b
		}
	}
	return nil
}

func parseSharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	var buf strings.Builder
	var inT bool
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "si":
				buf.Reset()
			case "t":
				inT = true
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "t":
				inT = false
			case "si":
				out = append(out, buf.String())
				buf.Reset()
			}
		case xml.CharData:
			if inT {
				buf.Write(se)
			}
		}
	}
}

type sheetRowReader struct {
	dec    *xml.Decoder
	shared []string
	inRow  bool
	curRow []string
	maxCol int
}

func newSheetRowReader(data []byte, shared []string) *sheetRowReader {
	return &sheetRowReader{dec: xml.NewDecoder(bytes.NewReader(data)), shared: shared}
}

func (r *sheetRowReader) Next() ([]string, bool) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, false
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "row" {
				r.inRow = true
				r.curRow = nil
				r.maxCol = 0
			}
			if r.inRow && se.Name.Local == "c" {
				var rAttr, tAttr string
				for _, a := range se.Attr {
					switch a.Name.Local {
					case "r":
						rAttr = a.Value
					case "t":
						tAttr = a.Value
					}
				}
				colIdx := len(r.curRow)
				if rAttr != "" {
					colIdx = colIndexFromRef(rAttr)
				}
				if colIdx+1 > r.maxCol {
					r.maxCol = colIdx + 1
				}
				val := r.readCellValue(tAttr)
				if len(r.curRow) <= colIdx {
					tmp := make([]string, colIdx+1)
					copy(tmp, r.curRow)
					r.curRow = tmp
				}
				r.curRow[colIdx] = val
			}
		case xml.EndElement:
			if se.Name.Local == "row" {
				if len(r.curRow) < r.maxCol {
					tmp := make([]string, r.maxCol)
					copy(tmp, r.curRow)
					r.curRow = tmp
				}
				r.inRow = false
				return r.curRow, true
			}
		}
	}
}

// readCellValue consumes tokens up to </c>, capturing <v> or <is><t>.
func (r *sheetRowReader) readCellValue(tAttr string) string {
	var val string
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return val
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "v" || se.Name.Local == "t" {
				var sb strings.Builder
				for {
					tk, er := r.dec.Token()
					if er != nil {
						break
					}
					if ed, ok := tk.(xml.EndElement); ok && (ed.Name.Local == "v" || ed.Name.Local == "t") {
						break
					}
					if ch, ok := tk.(xml.CharData); ok {
						sb.Write(ch)
					}
				}
				val = sb.String()
			}
		case xml.EndElement:
			if se.Name.Local == "c" {
				if tAttr == "s" {
					idx := atoiSafe(val)
					if idx >= 0 && idx < len(r.shared) {
						return r.shared[idx]
					}
					return ""
				}
				return val
			}
		}
	}
}

// colIndexFromRef maps refs like "C12" to a 0-based column index (2).
func colIndexFromRef(ref string) int {
	i := 0
	for i < len(ref) {
		c := ref[i]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
			i++
			continue
		}
		break
	}
	s := strings.ToUpper(ref[:i])
	idx := 0
	for j := 0; j < len(s); j++ {
		idx = idx*26 + int(s[j]-'A'+1)
	}
	return idx - 1
}

func atoiSafe(s string) int {
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

// normalizeRelPath converts relationship Target paths to ZIP entry names.
// Targets may carry a leading slash ("/xl/worksheets/sheet1.xml"); ZIP entries never do.
func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return path.Join("xl", rel)
}

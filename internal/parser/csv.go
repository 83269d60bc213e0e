package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

type csvFormat struct{}

func (csvFormat) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvFormat) Open(path string, opt Options) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	return &csvSource{r: newCSVReader(f, delim), c: f}, nil
}

// NewCSVSource reads delimited rows from r. A zero delimiter means ','.
func NewCSVSource(r io.Reader, delim rune) Source {
	if delim == 0 {
		delim = ','
	}
	return &csvSource{r: newCSVReader(r, delim)}
}

type csvSource struct {
	r *csv.Reader
	c io.Closer
}

func (s *csvSource) Read() ([]string, error) {
	rec, err := s.r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rec, nil
}

func (s *csvSource) Close() error {
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}

func newCSVReader(r io.Reader, delim rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = delim
	return cr
}

func sniffDelimiter(path string) rune {
	name := strings.ToLower(path)
	if strings.HasSuffix(name, ".tsv") {
		return '\t'
	}
	// Default to comma; using filename heuristic only to avoid reading twice.
	return ','
}

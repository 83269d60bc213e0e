package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
)

// Source yields table rows one at a time. Read returns io.EOF after the last row.
type Source interface {
	Read() ([]string, error)
	Close() error
}

// Format opens row sources for the files it recognizes.
type Format interface {
	CanParse(filename string) bool
	Open(path string, opt Options) (Source, error)
}

// Options tunes how a file is opened.
type Options struct {
	// Delimiter for CSV. If 0, picked from the file extension.
	Delimiter rune
	// SheetName selects an XLSX sheet by name; SheetIndex (1-based) is used when empty.
	SheetName  string
	SheetIndex int
}

var registry []Format

// Register adds a format implementation to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// Open selects a format based on filename and returns a row source.
func Open(path string, opt Options) (Source, error) {
	for _, f := range registry {
		if f.CanParse(path) {
			return f.Open(path, opt)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// ReadAll drains src and returns every remaining row.
func ReadAll(src Source) ([][]string, error) {
	var out [][]string
	for {
		rec, err := src.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
		out = append(out, rec)
	}
}

// FromRecords wraps in-memory rows as a Source.
func FromRecords(records [][]string) Source {
	return &recordSource{rows: records}
}

type recordSource struct {
	rows [][]string
	pos  int
}

func (s *recordSource) Read() ([]string, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	rec := s.rows[s.pos]
	s.pos++
	return rec, nil
}

func (s *recordSource) Close() error { return nil }

func init() {
	Register(csvFormat{})
	Register(xlsxFormat{})
}

// ErrUnsupported indicates a format is not supported yet.
var ErrUnsupported = errors.New("unsupported table format")

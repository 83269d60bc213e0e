package study

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/parser"
)

// Table names used in InputError.
const (
	TableMetadata = "mouse metadata"
	TableResults  = "study results"
)

// LoadMetadata reads the mouse metadata table. Mouse ids must be unique.
func LoadMetadata(src parser.Source) ([]MouseMeta, error) {
	t, err := openTable(src, TableMetadata, MetadataColumns)
	if err != nil {
		return nil, err
	}
	var out []MouseMeta
	seen := map[string]int{}
	for {
		rec, err := t.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		m := MouseMeta{MouseID: t.str(rec, ColMouseID), Regimen: t.str(rec, ColRegimen)}
		if m.MouseID == "" {
			return nil, t.fail(ColMouseID, "", errors.New("empty mouse id"))
		}
		if first, dup := seen[m.MouseID]; dup {
			return nil, t.fail(ColMouseID, m.MouseID, fmt.Errorf("%w (first seen at row %d)", ErrDuplicateMouse, first))
		}
		seen[m.MouseID] = t.row
		if m.Regimen == "" {
			return nil, t.fail(ColRegimen, "", errors.New("empty regimen"))
		}
		if m.Sex, err = t.sex(rec, ColSex); err != nil {
			return nil, err
		}
		if m.AgeMonths, err = t.integer(rec, ColAge); err != nil {
			return nil, err
		}
		if m.WeightG, err = t.number(rec, ColWeight, false); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
}

// LoadMeasurements reads the study results table, preserving row order.
func LoadMeasurements(src parser.Source) ([]Measurement, error) {
	t, err := openTable(src, TableResults, ResultsColumns)
	if err != nil {
		return nil, err
	}
	var out []Measurement
	for {
		rec, err := t.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		m := Measurement{MouseID: t.str(rec, ColMouseID)}
		if m.MouseID == "" {
			return nil, t.fail(ColMouseID, "", errors.New("empty mouse id"))
		}
		if m.Timepoint, err = t.integer(rec, ColTimepoint); err != nil {
			return nil, err
		}
		if m.TumorVolume, err = t.number(rec, ColVolume, true); err != nil {
			return nil, err
		}
		if m.MetastaticSites, err = t.integer(rec, ColMetSites); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
}

type table struct {
	name string
	src  parser.Source
	idx  map[string]int
	row  int
}

func openTable(src parser.Source, name string, required []string) (*table, error) {
	header, err := src.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &InputError{Table: name, Column: required[0], Err: fmt.Errorf("%w: no header row", ErrMissingColumn)}
		}
		return nil, &InputError{Table: name, Err: err}
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	var missing []string
	for _, c := range required {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &InputError{Table: name, Column: strings.Join(missing, ", "), Err: ErrMissingColumn}
	}
	return &table{name: name, src: src, idx: idx}, nil
}

// next returns the next non-blank record; blank rows still advance the row counter.
func (t *table) next() ([]string, error) {
	for {
		rec, err := t.src.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, &InputError{Table: t.name, Row: t.row + 1, Err: fmt.Errorf("%w: %w", ErrMalformedCell, err)}
		}
		t.row++
		if !blank(rec) {
			return rec, nil
		}
	}
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (t *table) str(rec []string, col string) string {
	i := t.idx[col]
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (t *table) fail(col, val string, err error) error {
	if !errors.Is(err, ErrMalformedCell) && !errors.Is(err, ErrDuplicateMouse) {
		err = fmt.Errorf("%w: %w", ErrMalformedCell, err)
	}
	return &InputError{Table: t.name, Row: t.row, Column: col, Value: val, Err: err}
}

func (t *table) integer(rec []string, col string) (int, error) {
	s := t.str(rec, col)
	n, err := strconv.Atoi(s)
	if err != nil {
		// spreadsheets often store integral values as "5.0"
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0, t.fail(col, s, err)
		}
		n = int(f)
	}
	if n < 0 {
		return 0, t.fail(col, s, errors.New("must be >= 0"))
	}
	return n, nil
}

func (t *table) number(rec []string, col string, allowZero bool) (float64, error) {
	s := t.str(rec, col)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, t.fail(col, s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, t.fail(col, s, errors.New("not a finite number"))
	}
	if f < 0 || (!allowZero && f == 0) {
		if allowZero {
			return 0, t.fail(col, s, errors.New("must be >= 0"))
		}
		return 0, t.fail(col, s, errors.New("must be > 0"))
	}
	return f, nil
}

func (t *table) sex(rec []string, col string) (Sex, error) {
	s := t.str(rec, col)
	switch {
	case strings.EqualFold(s, string(Male)):
		return Male, nil
	case strings.EqualFold(s, string(Female)):
		return Female, nil
	}
	return "", t.fail(col, s, errors.New("want Male or Female"))
}

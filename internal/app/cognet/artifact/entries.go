// Package artifact reads and writes the intermediate CSV files of the
// pipeline: normalized entries, the store snapshot and the edge list.
//
// Every artifact carries exactly one header row. Writers emit it, readers
// validate and consume it before any data row.
package artifact

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/heartmarshall/cognet-graph/internal/domain"
)

// EntryColumns is the header of the normalized entries artifact and the
// column list of the cognates COPY.
var EntryColumns = []string{"concept_id", "language", "word", "translit"}

// EntryWriter appends normalized entries as CSV.
type EntryWriter struct {
	w    *csv.Writer
	rows int
}

// NewEntryWriter writes the header and returns a writer for entry rows.
func NewEntryWriter(w io.Writer) (*EntryWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(EntryColumns); err != nil {
		return nil, fmt.Errorf("write entries header: %w", err)
	}
	return &EntryWriter{w: cw}, nil
}

// Write appends one entry. A NULL transliteration is written as the NULL sentinel.
func (ew *EntryWriter) Write(e domain.WordEntry) error {
	translit := domain.NullSentinel
	if e.Translit != nil {
		translit = *e.Translit
	}
	if err := ew.w.Write([]string{e.ConceptID, e.Language, e.Word, translit}); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	ew.rows++
	return nil
}

// Rows returns the number of data rows written.
func (ew *EntryWriter) Rows() int { return ew.rows }

// Flush writes buffered rows to the underlying writer.
func (ew *EntryWriter) Flush() error {
	ew.w.Flush()
	return ew.w.Error()
}

// EntrySource streams an entries artifact as COPY rows
// (concept_id, language, word, translit).
type EntrySource struct {
	csvSource
}

// NewEntrySource validates the header and returns a row source.
func NewEntrySource(r io.Reader) (*EntrySource, error) {
	src, err := newCSVSource(r, EntryColumns)
	if err != nil {
		return nil, err
	}
	return &EntrySource{csvSource: src}, nil
}

func (s *EntrySource) Values() ([]any, error) {
	rec := s.current
	var translit any
	if rec[3] != domain.NullSentinel {
		translit = rec[3]
	}
	return []any{rec[0], rec[1], rec[2], translit}, nil
}

// ReadEntries decodes a whole entries artifact.
func ReadEntries(r io.Reader) ([]domain.WordEntry, error) {
	src, err := NewEntrySource(r)
	if err != nil {
		return nil, err
	}

	var out []domain.WordEntry
	for src.Next() {
		rec := src.current
		e := domain.WordEntry{ConceptID: rec[0], Language: rec[1], Word: rec[2]}
		if rec[3] != domain.NullSentinel {
			t := rec[3]
			e.Translit = &t
		}
		out = append(out, e)
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Languages returns the distinct language codes of an entries artifact in
// order of first occurrence.
func Languages(r io.Reader) ([]string, error) {
	src, err := NewEntrySource(r)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var codes []string
	for src.Next() {
		code := src.current[1]
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	return codes, nil
}

// csvSource is the shared Next/Err half of a RowSource over a CSV artifact.
type csvSource struct {
	r       *csv.Reader
	current []string
	line    int
	err     error
}

func newCSVSource(r io.Reader, columns []string) (csvSource, error) {
	// FieldsPerRecord stays 0: every row must match the header width.
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return csvSource{}, fmt.Errorf("empty artifact: %w", domain.ErrArtifactHeader)
		}
		return csvSource{}, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	if !slices.Equal(header, columns) {
		return csvSource{}, fmt.Errorf("header %v, want %v: %w", header, columns, domain.ErrArtifactHeader)
	}

	return csvSource{r: cr, line: 1}, nil
}

func (s *csvSource) Next() bool {
	if s.err != nil {
		return false
	}
	rec, err := s.r.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = fmt.Errorf("read row after line %d: %w", s.line, err)
		}
		s.current = nil
		return false
	}
	s.line, _ = s.r.FieldPos(0)
	s.current = rec
	return true
}

func (s *csvSource) Err() error { return s.err }

// Line returns the artifact line of the current row.
func (s *csvSource) Line() int { return s.line }

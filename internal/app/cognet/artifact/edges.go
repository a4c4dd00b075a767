package artifact

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/heartmarshall/cognet-graph/internal/domain"
)

// EdgeColumns is the header of the edge artifact and the column list of the edges COPY.
var EdgeColumns = []string{"word1_id", "word2_id"}

// EdgeWriter appends canonical edges as CSV.
type EdgeWriter struct {
	w    *csv.Writer
	rows int
}

// NewEdgeWriter writes the header and returns a writer for edge rows.
func NewEdgeWriter(w io.Writer) (*EdgeWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(EdgeColumns); err != nil {
		return nil, fmt.Errorf("write edges header: %w", err)
	}
	return &EdgeWriter{w: cw}, nil
}

// Write appends one edge in its canonical endpoint order.
func (ew *EdgeWriter) Write(e domain.Edge) error {
	if err := ew.w.Write([]string{strconv.FormatInt(e.A, 10), strconv.FormatInt(e.B, 10)}); err != nil {
		return fmt.Errorf("write edge: %w", err)
	}
	ew.rows++
	return nil
}

// Rows returns the number of data rows written.
func (ew *EdgeWriter) Rows() int { return ew.rows }

// Flush writes buffered rows to the underlying writer.
func (ew *EdgeWriter) Flush() error {
	ew.w.Flush()
	return ew.w.Error()
}

// EdgeSource streams an edge artifact as COPY rows (word1_id, word2_id).
type EdgeSource struct {
	csvSource
}

// NewEdgeSource validates the header and returns a row source.
func NewEdgeSource(r io.Reader) (*EdgeSource, error) {
	src, err := newCSVSource(r, EdgeColumns)
	if err != nil {
		return nil, err
	}
	return &EdgeSource{csvSource: src}, nil
}

// Values parses the current row. A non-integer id is a validation error.
func (s *EdgeSource) Values() ([]any, error) {
	a, err := strconv.ParseInt(s.current[0], 10, 64)
	if err != nil {
		return nil, &domain.RecordError{Line: s.line, Err: fmt.Errorf("word1_id %q: %w", s.current[0], domain.ErrValidation)}
	}
	b, err := strconv.ParseInt(s.current[1], 10, 64)
	if err != nil {
		return nil, &domain.RecordError{Line: s.line, Err: fmt.Errorf("word2_id %q: %w", s.current[1], domain.ErrValidation)}
	}
	return []any{a, b}, nil
}

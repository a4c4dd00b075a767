package domain

import (
	"time"

	"github.com/google/uuid"
)

// RowSource is a forward-only stream of rows for bulk transfer.
// Values returns the current row; each call must return a fresh slice.
// Its shape matches pgx.CopyFromSource.
type RowSource interface {
	Next() bool
	Values() ([]any, error)
	Err() error
}

// LoadResult describes a committed bulk load.
type LoadResult struct {
	RunID    uuid.UUID
	Table    string
	Rows     int64
	Batches  int
	Duration time.Duration
}

// SliceSource adapts in-memory rows to RowSource.
type SliceSource struct {
	rows [][]any
	pos  int
}

// NewSliceSource creates a RowSource over rows.
func NewSliceSource(rows [][]any) *SliceSource {
	return &SliceSource{rows: rows}
}

func (s *SliceSource) Next() bool {
	if s.pos >= len(s.rows) {
		return false
	}
	s.pos++
	return true
}

func (s *SliceSource) Values() ([]any, error) {
	return s.rows[s.pos-1], nil
}

func (s *SliceSource) Err() error { return nil }

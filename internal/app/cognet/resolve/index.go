// Package resolve maps persisted word entries back to their surrogate identifiers.
package resolve

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/heartmarshall/cognet-graph/internal/domain"
)

// Required snapshot columns. Any other column is ignored.
var requiredColumns = []string{"concept_id", "language", "word", "uid"}

// Stats holds index statistics for logging.
type Stats struct {
	Rows        int
	Overwritten int
}

// Index is a point-in-time, read-only lookup from (concept, language, word)
// to uid. It is built once and never written to afterwards.
type Index struct {
	uids  map[domain.EntryKey]int64
	stats Stats
}

// FromEntries builds an Index from persisted entries. On duplicate keys the
// last entry wins.
func FromEntries(entries []domain.WordEntry) *Index {
	idx := &Index{uids: make(map[domain.EntryKey]int64, len(entries))}
	for _, e := range entries {
		idx.put(e.Key(), e.UID)
	}
	return idx
}

// LoadIndex builds an Index from a snapshot CSV. Columns are located by the
// header row, so their order does not matter.
func LoadIndex(r io.Reader) (*Index, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read snapshot header: %w", domain.ErrArtifactHeader)
		}
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}

	pos, err := columnPositions(header)
	if err != nil {
		return nil, err
	}

	idx := &Index{uids: make(map[domain.EntryKey]int64)}
	width := 0
	for _, p := range pos {
		width = max(width, p+1)
	}

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read snapshot row: %w", err)
		}
		if len(record) < width {
			return nil, &domain.RecordError{Line: line, Fields: len(record), Err: domain.ErrMalformedRecord}
		}

		uid, err := strconv.ParseInt(strings.TrimSpace(record[pos["uid"]]), 10, 64)
		if err != nil {
			return nil, &domain.RecordError{Line: line, Err: fmt.Errorf("uid %q: %w", record[pos["uid"]], domain.ErrValidation)}
		}

		idx.put(domain.EntryKey{
			ConceptID: record[pos["concept_id"]],
			Language:  record[pos["language"]],
			Word:      record[pos["word"]],
		}, uid)
	}

	return idx, nil
}

func columnPositions(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(requiredColumns))
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		if _, dup := pos[col]; !dup {
			pos[col] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := pos[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("snapshot missing columns %s: %w", strings.Join(missing, ","), domain.ErrArtifactHeader)
	}
	return pos, nil
}

func (idx *Index) put(key domain.EntryKey, uid int64) {
	if _, ok := idx.uids[key]; ok {
		idx.stats.Overwritten++
	}
	idx.uids[key] = uid
	idx.stats.Rows++
}

// Lookup returns the uid for key. A missing key is a normal outcome.
func (idx *Index) Lookup(key domain.EntryKey) (int64, bool) {
	uid, ok := idx.uids[key]
	return uid, ok
}

// Len returns the number of distinct keys.
func (idx *Index) Len() int {
	return len(idx.uids)
}

// Stats returns build statistics.
func (idx *Index) Stats() Stats {
	return idx.stats
}

package artifact

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/heartmarshall/cognet-graph/internal/domain"
)

// SnapshotColumns is the header of an exported cognates snapshot.
var SnapshotColumns = []string{"uid", "concept_id", "language", "word", "translit"}

// WriteSnapshot writes persisted entries as a snapshot CSV. A NULL
// transliteration is written as an empty field.
func WriteSnapshot(w io.Writer, entries []domain.WordEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SnapshotColumns); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}

	for _, e := range entries {
		translit := ""
		if e.Translit != nil {
			translit = *e.Translit
		}
		row := []string{strconv.FormatInt(e.UID, 10), e.ConceptID, e.Language, e.Word, translit}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write snapshot row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

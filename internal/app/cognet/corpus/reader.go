// Package corpus reads the raw CogNet cognate-pair TSV.
// Pure functions: reader in, records out. No database dependencies.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/heartmarshall/cognet-graph/internal/domain"
)

// FieldCount is the number of tab-separated fields of a well-formed line.
const FieldCount = 7

// Record is one cognate pair as it appears in the corpus.
type Record struct {
	Line      int
	ConceptID string
	LangA     string
	WordA     string
	LangB     string
	WordB     string
	TranslitA string
	TranslitB string
}

// Entries returns the two word entries of the pair with normalized transliterations.
func (r Record) Entries() (domain.WordEntry, domain.WordEntry) {
	a := domain.WordEntry{
		ConceptID: r.ConceptID,
		Language:  r.LangA,
		Word:      r.WordA,
		Translit:  domain.NormalizeTranslit(r.TranslitA),
	}
	b := domain.WordEntry{
		ConceptID: r.ConceptID,
		Language:  r.LangB,
		Word:      r.WordB,
		Translit:  domain.NormalizeTranslit(r.TranslitB),
	}
	return a, b
}

// KeyA returns the resolver key of the first word.
func (r Record) KeyA() domain.EntryKey {
	return domain.EntryKey{ConceptID: r.ConceptID, Language: r.LangA, Word: r.WordA}
}

// KeyB returns the resolver key of the second word.
func (r Record) KeyB() domain.EntryKey {
	return domain.EntryKey{ConceptID: r.ConceptID, Language: r.LangB, Word: r.WordB}
}

// Stats holds reader statistics for logging.
type Stats struct {
	TotalLines int
	Records    int
	Malformed  int
}

// Scan reads the corpus from r, discarding the header line, and calls fn for
// every well-formed record in stream order. Lines with the wrong field count
// are logged and skipped. An error from fn stops the scan and is returned.
func Scan(r io.Reader, log *slog.Logger, fn func(Record) error) (Stats, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var stats Stats
	line := 0

	for scanner.Scan() {
		line++
		if line == 1 {
			continue
		}
		stats.TotalLines++

		rec, err := parseLine(line, scanner.Text())
		if err != nil {
			stats.Malformed++
			log.Warn("skipping malformed row",
				slog.Int("line", line),
				slog.String("error", err.Error()),
			)
			continue
		}

		stats.Records++
		if err := fn(rec); err != nil {
			return stats, err
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scanner error: %w", err)
	}

	return stats, nil
}

func parseLine(line int, text string) (Record, error) {
	text = strings.TrimSuffix(text, "\r")

	parts := strings.Split(text, "\t")
	if len(parts) != FieldCount {
		return Record{}, domain.NewMalformedRecordError(line, len(parts))
	}

	return Record{
		Line:      line,
		ConceptID: parts[0],
		LangA:     parts[1],
		WordA:     parts[2],
		LangB:     parts[3],
		WordB:     parts[4],
		TranslitA: parts[5],
		TranslitB: parts[6],
	}, nil
}

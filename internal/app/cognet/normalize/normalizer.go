// Package normalize turns raw cognate pairs into unique per-language word entries.
package normalize

import (
	"github.com/heartmarshall/cognet-graph/internal/app/cognet/corpus"
	"github.com/heartmarshall/cognet-graph/internal/domain"
)

// Stats holds normalizer statistics for logging.
type Stats struct {
	Emitted    int
	Duplicates int
}

// Normalizer splits cognate pairs into word entries and emits every exact
// (concept, language, word, transliteration) tuple at most once.
// A Normalizer holds the dedup state of one run and is not safe for
// concurrent use.
type Normalizer struct {
	seen  map[domain.EntryTuple]struct{}
	stats Stats
}

// New creates an empty Normalizer.
func New() *Normalizer {
	return &Normalizer{seen: make(map[domain.EntryTuple]struct{})}
}

// Add returns the entries of rec that have not been emitted before, in
// position order (first word, then second word).
func (n *Normalizer) Add(rec corpus.Record) []domain.WordEntry {
	a, b := rec.Entries()

	out := make([]domain.WordEntry, 0, 2)
	for _, e := range [2]domain.WordEntry{a, b} {
		t := e.Tuple()
		if _, ok := n.seen[t]; ok {
			n.stats.Duplicates++
			continue
		}
		n.seen[t] = struct{}{}
		n.stats.Emitted++
		out = append(out, e)
	}
	return out
}

// Stats returns counters accumulated so far.
func (n *Normalizer) Stats() Stats {
	return n.stats
}

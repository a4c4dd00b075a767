package domain

import "strings"

// NullSentinel is the token PostgreSQL COPY uses for NULL in CSV artifacts.
const NullSentinel = `\N`

// WordEntry is one language-specific realization of a concept.
// UID is zero until the entry has been persisted.
type WordEntry struct {
	UID       int64
	ConceptID string
	Language  string
	Word      string
	Translit  *string
}

// Tuple returns the exact dedup key of the entry, transliteration included.
func (e WordEntry) Tuple() EntryTuple {
	t := NullSentinel
	if e.Translit != nil {
		t = *e.Translit
	}
	return EntryTuple{ConceptID: e.ConceptID, Language: e.Language, Word: e.Word, Translit: t}
}

// Key returns the resolver key of the entry. Transliteration is not part of it.
func (e WordEntry) Key() EntryKey {
	return EntryKey{ConceptID: e.ConceptID, Language: e.Language, Word: e.Word}
}

// EntryTuple is the comparable form of a WordEntry without its UID.
// A NULL transliteration is stored as NullSentinel.
type EntryTuple struct {
	ConceptID string
	Language  string
	Word      string
	Translit  string
}

// EntryKey identifies a persisted word within a concept.
type EntryKey struct {
	ConceptID string
	Language  string
	Word      string
}

// NormalizeTranslit trims whitespace and maps an empty transliteration to nil.
func NormalizeTranslit(raw string) *string {
	t := strings.TrimSpace(raw)
	if t == "" {
		return nil
	}
	return &t
}

// Edge is an unordered cognate relation between two persisted entries.
// A is never greater than B; construct it with NewEdge.
type Edge struct {
	A int64
	B int64
}

// NewEdge returns the canonical edge for the pair, independent of argument order.
func NewEdge(x, y int64) Edge {
	if y < x {
		x, y = y, x
	}
	return Edge{A: x, B: y}
}

// Language is an ISO 639 code with its English display name.
type Language struct {
	Code string
	Name string
}

// Package edges builds canonical, deduplicated cognate edges between
// persisted word entries.
package edges

import (
	"github.com/heartmarshall/cognet-graph/internal/app/cognet/corpus"
	"github.com/heartmarshall/cognet-graph/internal/domain"
)

// Resolver maps a word to its persisted identifier.
// Implemented by resolve.Index.
type Resolver interface {
	Lookup(key domain.EntryKey) (int64, bool)
}

// Stats holds builder statistics for logging.
type Stats struct {
	Emitted    int
	Unresolved int
	Duplicates int
}

// Builder turns cognate pairs into edges. It owns the seen-edge set of one
// run and is not safe for concurrent use.
type Builder struct {
	resolver Resolver
	seen     map[domain.Edge]struct{}
	stats    Stats
}

// NewBuilder creates a Builder resolving endpoints through the given snapshot.
func NewBuilder(resolver Resolver) *Builder {
	return &Builder{
		resolver: resolver,
		seen:     make(map[domain.Edge]struct{}),
	}
}

// Add resolves both words of rec and returns the canonical edge if it has
// not been emitted before. Pairs with an unresolved endpoint yield nothing.
func (b *Builder) Add(rec corpus.Record) (domain.Edge, bool) {
	uidA, okA := b.resolver.Lookup(rec.KeyA())
	uidB, okB := b.resolver.Lookup(rec.KeyB())
	if !okA || !okB {
		b.stats.Unresolved++
		return domain.Edge{}, false
	}

	edge := domain.NewEdge(uidA, uidB)
	if _, ok := b.seen[edge]; ok {
		b.stats.Duplicates++
		return domain.Edge{}, false
	}
	b.seen[edge] = struct{}{}
	b.stats.Emitted++

	return edge, true
}

// Stats returns counters accumulated so far.
func (b *Builder) Stats() Stats {
	return b.stats
}

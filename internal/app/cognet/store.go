// Package cognet orchestrates the cognate graph pipeline: corpus
// normalization, store loads, snapshot export and edge construction.
package cognet

import (
	"context"

	"github.com/heartmarshall/cognet-graph/internal/domain"
)

// CognateStore is the persistence contract consumed by the pipeline.
// All methods use only domain types. Implemented by cognates.Repo.
type CognateStore interface {
	// Bulk loads run in one transaction each and are all-or-nothing.
	LoadEntries(ctx context.Context, src domain.RowSource) (domain.LoadResult, error)
	LoadEdges(ctx context.Context, src domain.RowSource) (domain.LoadResult, error)

	ExportEntries(ctx context.Context) ([]domain.WordEntry, error)
	UpsertLanguages(ctx context.Context, langs []domain.Language) (int64, error)
}

// LanguageNamer resolves a language code to a display name.
type LanguageNamer interface {
	Name(code string) (string, bool)
}

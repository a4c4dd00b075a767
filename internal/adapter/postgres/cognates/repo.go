// Package cognates stores the cognate graph in PostgreSQL: word entries,
// undirected edges and language names.
package cognates

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/cognet-graph/internal/adapter/postgres"
	"github.com/heartmarshall/cognet-graph/internal/adapter/postgres/bulk"
	"github.com/heartmarshall/cognet-graph/internal/domain"
)

// languageChunk bounds the rows of one INSERT so the bind parameter count
// stays under the protocol limit.
const languageChunk = 1000

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides cognate graph persistence backed by PostgreSQL.
type Repo struct {
	pool   postgres.Pool
	tx     *postgres.TxManager
	loader *bulk.Loader
}

// New creates a new cognates repository. batchSize is the COPY batch size
// used by LoadEntries and LoadEdges.
func New(pool postgres.Pool, batchSize int, log *slog.Logger) *Repo {
	return &Repo{
		pool:   pool,
		tx:     postgres.NewTxManager(pool),
		loader: bulk.NewLoader(pool, batchSize, log),
	}
}

// LoadEntries bulk-loads rows (concept_id, language, word, translit) into cognates.
func (r *Repo) LoadEntries(ctx context.Context, src domain.RowSource) (domain.LoadResult, error) {
	return r.loader.Load(ctx, CognatesTable, src)
}

// LoadEdges bulk-loads rows (word1_id, word2_id) into edges.
func (r *Repo) LoadEdges(ctx context.Context, src domain.RowSource) (domain.LoadResult, error) {
	return r.loader.Load(ctx, EdgesTable, src)
}

type cognateRow struct {
	UID       int64   `db:"uid"`
	ConceptID string  `db:"concept_id"`
	Language  string  `db:"language"`
	Word      string  `db:"word"`
	Translit  *string `db:"translit"`
}

// ExportEntries returns every persisted entry ordered by uid.
// Returns an empty slice (not nil) when the table is empty.
func (r *Repo) ExportEntries(ctx context.Context) ([]domain.WordEntry, error) {
	query, args, err := psql.
		Select("uid", "concept_id", "language", "word", "translit").
		From(cognatesTable).
		OrderBy("uid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build export query: %w", err)
	}

	var rows []cognateRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "export cognates")
	}

	entries := make([]domain.WordEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.WordEntry{
			UID:       row.UID,
			ConceptID: row.ConceptID,
			Language:  row.Language,
			Word:      row.Word,
			Translit:  row.Translit,
		}
	}
	return entries, nil
}

// UpsertLanguages creates the languages table if needed and inserts the
// given languages. Codes already present are left untouched.
// Returns the number of rows actually inserted.
func (r *Repo) UpsertLanguages(ctx context.Context, langs []domain.Language) (int64, error) {
	var inserted int64

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		if _, err := q.Exec(ctx, createLanguagesSQL); err != nil {
			return postgres.MapError(err, "create table languages")
		}

		for start := 0; start < len(langs); start += languageChunk {
			chunk := langs[start:min(start+languageChunk, len(langs))]

			insert := psql.Insert(languagesTable).Columns("id", "language")
			for _, l := range chunk {
				insert = insert.Values(l.Code, l.Name)
			}
			query, args, err := insert.Suffix("ON CONFLICT (id) DO NOTHING").ToSql()
			if err != nil {
				return fmt.Errorf("build languages insert: %w", err)
			}

			tag, err := q.Exec(ctx, query, args...)
			if err != nil {
				return postgres.MapError(err, "insert languages")
			}
			inserted += tag.RowsAffected()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

package testhelper

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/cognet-graph/internal/domain"
)

// Reset empties every cognet table and restarts the uid sequences.
// Tests sharing the container call it first so counts start at zero.
func Reset(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`TRUNCATE cognates, edges, languages RESTART IDENTITY`)
	if err != nil {
		t.Fatalf("testhelper: Reset: %v", err)
	}
}

// SeedEntries inserts entries into cognates and returns them with UID set.
func SeedEntries(t *testing.T, pool *pgxpool.Pool, entries ...domain.WordEntry) []domain.WordEntry {
	t.Helper()

	out := make([]domain.WordEntry, len(entries))
	for i, e := range entries {
		err := pool.QueryRow(context.Background(),
			`INSERT INTO cognates (concept_id, language, word, translit)
			 VALUES ($1, $2, $3, $4) RETURNING uid`,
			e.ConceptID, e.Language, e.Word, e.Translit,
		).Scan(&e.UID)
		if err != nil {
			t.Fatalf("testhelper: SeedEntries: %v", err)
		}
		out[i] = e
	}
	return out
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), `SELECT count(*) FROM `+table).Scan(&n); err != nil {
		t.Fatalf("testhelper: CountRows(%s): %v", table, err)
	}
	return n
}

// Package bulk transfers row streams into PostgreSQL with the COPY protocol.
//
// A load is one transaction: the table DDL and every batch either commit
// together or are rolled back together.
package bulk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/cognet-graph/internal/adapter/postgres"
	"github.com/heartmarshall/cognet-graph/internal/domain"
	"github.com/heartmarshall/cognet-graph/pkg/ctxutil"
)

// DefaultBatchSize is used when a Loader is created with a non-positive size.
const DefaultBatchSize = 10000

// Table describes a COPY target.
type Table struct {
	Name    string
	Columns []string
	// DDL creates the table idempotently. Empty means the table must exist.
	DDL string
}

// Loader copies rows in fixed-size batches inside one transaction.
type Loader struct {
	pool      postgres.Pool
	tx        *postgres.TxManager
	batchSize int
	log       *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(pool postgres.Pool, batchSize int, log *slog.Logger) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Loader{
		pool:      pool,
		tx:        postgres.NewTxManager(pool),
		batchSize: batchSize,
		log:       log,
	}
}

// BatchSize returns the number of rows sent per COPY.
func (l *Loader) BatchSize() int { return l.batchSize }

// Load creates the table if needed and copies every row of src into it.
// On any error nothing from this call stays committed.
func (l *Loader) Load(ctx context.Context, t Table, src domain.RowSource) (domain.LoadResult, error) {
	runID, ok := ctxutil.RunIDFromCtx(ctx)
	if !ok {
		runID = uuid.New()
		ctx = ctxutil.WithRunID(ctx, runID)
	}
	phase := ctxutil.PhaseFromCtx(ctx)

	log := l.log.With(
		slog.String("run_id", runID.String()),
		slog.String("phase", phase),
		slog.String("table", t.Name),
	)

	res := domain.LoadResult{RunID: runID, Table: t.Name}
	start := time.Now()

	err := l.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, l.pool)

		if t.DDL != "" {
			if _, err := q.Exec(ctx, t.DDL); err != nil {
				return postgres.MapError(err, "create table "+t.Name)
			}
		}

		for {
			batch, err := nextBatch(src, l.batchSize)
			if err != nil {
				return fmt.Errorf("read batch %d: %w", res.Batches+1, err)
			}
			if len(batch) == 0 {
				return nil
			}

			n, err := q.CopyFrom(ctx, pgx.Identifier{t.Name}, t.Columns, pgx.CopyFromRows(batch))
			if err != nil {
				return postgres.MapError(err, fmt.Sprintf("copy %s batch %d", t.Name, res.Batches+1))
			}

			res.Batches++
			res.Rows += n
			log.Debug("batch copied", slog.Int("batch", res.Batches), slog.Int64("rows", n))

			if len(batch) < l.batchSize {
				return nil
			}
		}
	})
	res.Duration = time.Since(start)

	if err != nil {
		log.Error("load rolled back",
			slog.Int("batches_sent", res.Batches),
			slog.String("error", err.Error()),
		)
		return domain.LoadResult{RunID: runID, Table: t.Name, Duration: res.Duration}, err
	}

	log.Info("load committed",
		slog.Int64("rows", res.Rows),
		slog.Int("batches", res.Batches),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}

// nextBatch reads up to size rows from src.
func nextBatch(src domain.RowSource, size int) ([][]any, error) {
	batch := make([][]any, 0, min(size, 1024))
	for len(batch) < size && src.Next() {
		values, err := src.Values()
		if err != nil {
			return nil, err
		}
		batch = append(batch, values)
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	return batch, nil
}

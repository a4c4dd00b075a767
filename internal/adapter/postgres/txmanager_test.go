package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v2"

	"github.com/heartmarshall/cognet-graph/internal/adapter/postgres"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestRunInTx_Commit(t *testing.T) {
	mock := newMock(t)
	tm := postgres.NewTxManager(mock)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS edges").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectCommit()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, mock)
		_, err := q.Exec(ctx, "CREATE TABLE IF NOT EXISTS edges (uid SERIAL PRIMARY KEY)")
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	mock := newMock(t)
	tm := postgres.NewTxManager(mock)

	sentinel := errors.New("batch failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunInTx_RollbackFailure(t *testing.T) {
	mock := newMock(t)
	tm := postgres.NewTxManager(mock)

	sentinel := errors.New("batch failed")
	rbErr := errors.New("connection lost")

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(rbErr)

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return sentinel
	})
	if !errors.Is(err, rbErr) {
		t.Fatalf("expected rollback error in chain, got: %v", err)
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	mock := newMock(t)
	tm := postgres.NewTxManager(mock)

	mock.ExpectBegin()
	mock.ExpectRollback()

	func() {
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected panic to be re-raised")
			}
			if r != "boom" {
				t.Fatalf("unexpected panic value: %v", r)
			}
		}()

		_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	}()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunInTx_BeginError(t *testing.T) {
	mock := newMock(t)
	tm := postgres.NewTxManager(mock)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected begin error")
	}
	if called {
		t.Fatal("fn must not run when begin fails")
	}
}

func TestQuerierFromCtx_WithoutTx(t *testing.T) {
	mock := newMock(t)

	q := postgres.QuerierFromCtx(context.Background(), mock)
	if q != postgres.Querier(mock) {
		t.Fatal("expected fallback querier outside a transaction")
	}
}

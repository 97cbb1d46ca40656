package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/hospital-admin/internal/repository"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
)

const uniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories. ext is
// either the pool or an open transaction.
type BaseRepository struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *sqlx.DB) BaseRepository {
	return BaseRepository{db: db, ext: db}
}

func newTxBase(db *sqlx.DB, tx *sqlx.Tx) BaseRepository {
	return BaseRepository{db: db, ext: tx}
}

// WithTx executes a function within a transaction
func (r *BaseRepository) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.NewStorage(fmt.Errorf("failed to begin transaction: %w", err))
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapError(err, "failed to commit transaction")
	}
	return nil
}

func (r *BaseRepository) get(ctx context.Context, dest interface{}, resource, query string, args ...interface{}) error {
	err := sqlx.GetContext(ctx, r.ext, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFound(resource, err)
	}
	if err != nil {
		return mapError(err, "failed to get "+resource)
	}
	return nil
}

func (r *BaseRepository) selectAll(ctx context.Context, dest interface{}, what, query string, args ...interface{}) error {
	if err := sqlx.SelectContext(ctx, r.ext, dest, query, args...); err != nil {
		return mapError(err, "failed to list "+what)
	}
	return nil
}

// exec runs a write and returns the number of affected rows.
func (r *BaseRepository) exec(ctx context.Context, op, query string, args ...interface{}) (int64, error) {
	result, err := r.ext.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, op)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewStorage(fmt.Errorf("failed to get rows affected: %w", err))
	}
	return rows, nil
}

// update runs an UPDATE and maps zero affected rows to NotFound.
func (r *BaseRepository) update(ctx context.Context, resource, query string, args ...interface{}) error {
	rows, err := r.exec(ctx, "failed to update "+resource, query, args...)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NewNotFound(resource, nil)
	}
	return nil
}

func (r *BaseRepository) delete(ctx context.Context, resource, query string, id interface{}) (bool, error) {
	rows, err := r.exec(ctx, "failed to delete "+resource, query, id)
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// mapError turns driver errors into the repository's error vocabulary:
// unique violations wrap repository.ErrDuplicate, everything else is a StorageError.
func mapError(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w (%s)", op, repository.ErrDuplicate, pqErr.Constraint)
	}
	return apperrors.NewStorage(fmt.Errorf("%s: %w", op, err))
}

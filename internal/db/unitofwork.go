package db

import (
	"context"
	"errors"
	"fmt"
)

// UnitOfWork runs a group of writes atomically. Repositories are rebuilt over
// the DBTX handed to fn so every statement joins the same transaction.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// TxUnitOfWork commits when fn returns nil and rolls back otherwise.
type TxUnitOfWork struct {
	db *DB
}

func NewUnitOfWork(db *DB) *TxUnitOfWork {
	return &TxUnitOfWork{db: db}
}

func (u *TxUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := u.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", u.db.Dialect(), err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && err != nil {
			err = errors.Join(err, fmt.Errorf("%s: rollback: %w", u.db.Dialect(), rbErr))
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", u.db.Dialect(), err)
	}
	committed = true
	return nil
}

package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Beginner là phần của *pgxpool.Pool mà transaction helper cần.
// Tách interface để service có thể test với fake.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxFunc là function type được execute trong transaction
type TxFunc func(pgx.Tx) error

// WithTransaction wraps một function trong transaction.
// Rollback nếu fn trả error hoặc panic, commit nếu success.
func WithTransaction(ctx context.Context, db Beginner, fn TxFunc) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}


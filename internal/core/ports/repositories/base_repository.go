package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management. Every
// ledger-mutating operation runs inside one transaction; a fatal error rolls
// the whole operation back.
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction
// capabilities.
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}

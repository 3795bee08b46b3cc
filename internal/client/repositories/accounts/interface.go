// Package accounts is the local account store: one row per successful
// login, addressed by the zero-based index assigned at creation.
package accounts

import (
	"context"

	"duckmail/internal/client/models"
)

// Repository describes the persistence operations for account records.
// Implementations are backed by the local SQLite database.
type Repository interface {
	// Add persists a record and returns the index assigned to it.
	// Indexes are zero-based and strictly increasing.
	Add(ctx context.Context, record *models.AccountRecord) (int64, error)

	// Get returns the record stored under the given index, or
	// common.ErrorNotFound.
	Get(ctx context.Context, index int64) (*models.AccountRecord, error)

	// List returns all records ordered by index.
	List(ctx context.Context) ([]models.AccountRecord, error)

	// UpdateAlias replaces the alias stored under the given index.
	UpdateAlias(ctx context.Context, index int64, alias string) error

	// Delete removes the record stored under the given index.
	Delete(ctx context.Context, index int64) error
}

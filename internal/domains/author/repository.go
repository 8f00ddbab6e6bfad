package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data-access contract for authors. Abstracted so
// services can be tested against a fake and the storage engine can be
// swapped.
type Repository interface {
	// Create inserts a new author and returns the stored row.
	Create(ctx context.Context, a *Author) (*Author, error)

	// GetByID returns ErrAuthorNotFound if no such id exists.
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// GetAll returns every author. Never fails on an empty table.
	GetAll(ctx context.Context) ([]Author, error)

	// Update overwrites the mutable columns of an existing author.
	// Returns ErrAuthorNotFound if the row is gone.
	Update(ctx context.Context, a *Author) (*Author, error)

	// Delete removes the author row. Join rows cascade at the schema
	// level. Returns ErrAuthorNotFound if nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}

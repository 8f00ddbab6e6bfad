package book

import "context"

// Repository is the data-access contract for books.
type Repository interface {
	// Create inserts a new book. Returns ErrDuplicateISBN if the
	// primary key is already taken.
	Create(ctx context.Context, b *Book) (*Book, error)

	// GetByISBN returns ErrBookNotFound if no such isbn exists.
	GetByISBN(ctx context.Context, isbn string) (*Book, error)

	// GetAll returns every book. Never fails on an empty table.
	GetAll(ctx context.Context) ([]Book, error)

	// Update overwrites the mutable columns of an existing book.
	// Returns ErrBookNotFound if the row is gone.
	Update(ctx context.Context, b *Book) (*Book, error)

	// Delete removes the book row. Join rows cascade at the schema
	// level. Returns ErrBookNotFound if nothing was deleted.
	Delete(ctx context.Context, isbn string) error
}

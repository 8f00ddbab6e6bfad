package book

import (
	"context"

	"bookshelf-backend/internal/shared/upload"
)

// Service is the business-logic contract for the book catalog. Same
// shape as the author directory, keyed by isbn.
type Service interface {
	// List returns all books; an empty catalog is not an error.
	List(ctx context.Context) ([]Book, error)

	// Create persists a new book under its caller-supplied isbn.
	// Returns ErrDuplicateISBN if the isbn is taken. A supplied image
	// is uploaded first; upload failure is fatal for the operation.
	Create(ctx context.Context, req *CreateBookRequest, image *upload.Image) (*Book, error)

	// GetByISBN returns ErrBookNotFound if no such isbn exists.
	GetByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update overwrites only the supplied fields and re-uploads the
	// image if one is provided. Returns ErrBookNotFound if absent.
	Update(ctx context.Context, isbn string, req *UpdateBookRequest, image *upload.Image) (*Book, error)

	// Delete removes the stored image (if any) and then the record,
	// returning a confirmation message.
	Delete(ctx context.Context, isbn string) (string, error)
}

package author

import (
	"context"

	"github.com/google/uuid"

	"bookshelf-backend/internal/shared/upload"
)

// Service is the business-logic contract for the author directory.
type Service interface {
	// List returns all authors; an empty directory is not an error.
	List(ctx context.Context) ([]Author, error)

	// Create persists a new author with a generated id. A supplied
	// image is uploaded to object storage first; upload failure is
	// fatal for the operation.
	Create(ctx context.Context, req *CreateAuthorRequest, image *upload.Image) (*Author, error)

	// GetByID returns ErrAuthorNotFound if no such id exists.
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// Update overwrites only the supplied fields and re-uploads the
	// image if one is provided. Returns ErrAuthorNotFound if absent.
	Update(ctx context.Context, id uuid.UUID, req *UpdateAuthorRequest, image *upload.Image) (*Author, error)

	// Delete removes the stored image (if any) and then the record,
	// returning a confirmation message.
	Delete(ctx context.Context, id uuid.UUID) (string, error)
}

package relation

import (
	"context"

	"github.com/google/uuid"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/domains/book"
)

// Service is the business-logic contract for book-author links. Both
// sides of the association mutate through these four operations only,
// which keeps the duplicate and dangling-reference rules in one place.
type Service interface {
	// AddAuthorToBook links an author to a book. Fails with
	// book.ErrBookNotFound or author.ErrAuthorNotFound if either side
	// is missing, and ErrLinkExists if they are already linked.
	// Returns the book with its updated author list.
	AddAuthorToBook(ctx context.Context, isbn string, authorID uuid.UUID) (*BookWithAuthors, error)

	// RemoveAuthorFromBook unlinks an author from a book. Fails with
	// ErrLinkNotFound if the pair was not linked, which callers can
	// tell apart from a missing book or author. Returns the book with
	// its updated author list.
	RemoveAuthorFromBook(ctx context.Context, isbn string, authorID uuid.UUID) (*BookWithAuthors, error)

	// GetBookAuthors returns the authors linked to an existing book.
	GetBookAuthors(ctx context.Context, isbn string) ([]author.Author, error)

	// GetAuthorBooks returns the books linked to an existing author.
	GetAuthorBooks(ctx context.Context, authorID uuid.UUID) ([]book.Book, error)
}

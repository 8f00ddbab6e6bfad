package relation

import (
	"context"

	"github.com/google/uuid"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/domains/book"
)

// Repository is the data-access contract for the book_authors join
// table. All link rows flow through here; nothing else writes the
// table.
type Repository interface {
	// CreateLink inserts one join row. The unique constraint on the
	// pair is the last line of defense against concurrent duplicate
	// inserts; a violation surfaces as ErrLinkExists.
	CreateLink(ctx context.Context, isbn string, authorID uuid.UUID) error

	// DeleteLink removes one join row. Returns ErrLinkNotFound if the
	// pair was not linked.
	DeleteLink(ctx context.Context, isbn string, authorID uuid.UUID) error

	// ListAuthorsByBook returns the authors linked to a book, oldest
	// link first. Empty slice when the book has no authors.
	ListAuthorsByBook(ctx context.Context, isbn string) ([]author.Author, error)

	// ListBooksByAuthor returns the books linked to an author, oldest
	// link first. Empty slice when the author has no books.
	ListBooksByAuthor(ctx context.Context, authorID uuid.UUID) ([]book.Book, error)
}

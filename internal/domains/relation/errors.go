package relation

import (
	"errors"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/domains/book"
)

var (
	// ErrLinkExists means the (book, author) pair is already linked.
	ErrLinkExists = errors.New("author already associated with book")

	// ErrLinkNotFound means no link exists for the pair. Distinct from
	// the book or author itself being missing.
	ErrLinkNotFound = errors.New("link not found")
)

// ToHTTPStatus converts a domain error to an HTTP status code. Link
// operations surface errors from all three domains, so the missing
// book and missing author cases are mapped here too.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrLinkExists):
		return 409
	case errors.Is(err, ErrLinkNotFound),
		errors.Is(err, book.ErrBookNotFound),
		errors.Is(err, author.ErrAuthorNotFound):
		return 404
	default:
		return 500
	}
}

package book

import "errors"

var (
	ErrBookNotFound = errors.New("book not found")

	// ErrDuplicateISBN is raised when creating a book whose ISBN is
	// already taken. The store's primary-key violation is translated
	// into this typed conflict rather than leaking the raw error.
	ErrDuplicateISBN = errors.New("book with this isbn already exists")
)

// ToHTTPStatus converts a domain error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return 404
	case errors.Is(err, ErrDuplicateISBN):
		return 409
	default:
		return 500
	}
}

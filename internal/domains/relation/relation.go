package relation

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/domains/book"
)

// BookWithAuthors is a book together with its linked authors. Link
// mutations return it so callers see the resulting author list without
// a follow-up read.
type BookWithAuthors struct {
	book.Book
	Authors []author.Author `json:"authors"`
}

// AttachAuthorRequest is the body for linking an author to a book.
type AttachAuthorRequest struct {
	AuthorID string `json:"authorId"`
}

func (r *AttachAuthorRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AuthorID, validation.Required, is.UUID),
	)
}

// AttachBookRequest is the body for linking a book to an author.
type AttachBookRequest struct {
	ISBN string `json:"isbn"`
}

func (r *AttachBookRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ISBN, validation.Required),
	)
}

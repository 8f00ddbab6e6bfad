package book

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Book is the domain entity. The caller-supplied ISBN is the primary
// key and never changes after creation.
type Book struct {
	ISBN      string    `json:"isbn" db:"isbn"`
	Title     string    `json:"title" db:"title"`
	Pages     int       `json:"pages" db:"pages"`
	Published int       `json:"published" db:"published"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	ImageKey  string    `json:"-" db:"image_key"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateBookRequest - POST /v1/books (multipart form)
type CreateBookRequest struct {
	ISBN      string `form:"isbn" json:"isbn"`
	Title     string `form:"title" json:"title"`
	Pages     int    `form:"pages" json:"pages"`
	Published int    `form:"published" json:"published"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ISBN, validation.Required.Error("isbn is required")),
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Pages, validation.Min(0).Error("pages must not be negative")),
		validation.Field(&r.Published, validation.Required.Error("publication year is required")),
	)
}

// ToEntity builds a Book from the request. The image fields are filled
// in by the service after a successful upload.
func (r CreateBookRequest) ToEntity() *Book {
	return &Book{
		ISBN:      r.ISBN,
		Title:     r.Title,
		Pages:     r.Pages,
		Published: r.Published,
	}
}

// UpdateBookRequest - PUT /v1/books/:isbn
// Only non-nil fields are applied; the ISBN itself is immutable.
type UpdateBookRequest struct {
	Title     *string `form:"title" json:"title"`
	Pages     *int    `form:"pages" json:"pages"`
	Published *int    `form:"published" json:"published"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty.Error("title must not be empty")),
		validation.Field(&r.Pages, validation.Min(0).Error("pages must not be negative")),
	)
}

// Apply copies the supplied fields onto the entity.
func (r UpdateBookRequest) Apply(b *Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Pages != nil {
		b.Pages = *r.Pages
	}
	if r.Published != nil {
		b.Published = *r.Published
	}
}

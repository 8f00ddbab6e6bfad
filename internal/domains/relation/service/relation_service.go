package service

import (
	"context"

	"github.com/google/uuid"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/domains/relation"
)

// relationService implements relation.Service. Every link mutation
// follows the same shape: load the book, load the author, test
// membership against the book's current author list, then write the
// single join row. The unique constraint on the pair backs up the
// membership test under concurrency.
type relationService struct {
	links   relation.Repository
	books   book.Repository
	authors author.Repository
}

func NewRelationService(
	links relation.Repository,
	books book.Repository,
	authors author.Repository,
) relation.Service {
	return &relationService{
		links:   links,
		books:   books,
		authors: authors,
	}
}

func (s *relationService) AddAuthorToBook(ctx context.Context, isbn string, authorID uuid.UUID) (*relation.BookWithAuthors, error) {
	b, err := s.books.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	if _, err := s.authors.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	linked, err := s.links.ListAuthorsByBook(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if containsAuthor(linked, authorID) {
		return nil, relation.ErrLinkExists
	}

	if err := s.links.CreateLink(ctx, isbn, authorID); err != nil {
		return nil, err
	}

	return s.bookWithAuthors(ctx, b)
}

func (s *relationService) RemoveAuthorFromBook(ctx context.Context, isbn string, authorID uuid.UUID) (*relation.BookWithAuthors, error) {
	b, err := s.books.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	if _, err := s.authors.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	if err := s.links.DeleteLink(ctx, isbn, authorID); err != nil {
		return nil, err
	}

	return s.bookWithAuthors(ctx, b)
}

func (s *relationService) GetBookAuthors(ctx context.Context, isbn string) ([]author.Author, error) {
	if _, err := s.books.GetByISBN(ctx, isbn); err != nil {
		return nil, err
	}
	return s.links.ListAuthorsByBook(ctx, isbn)
}

func (s *relationService) GetAuthorBooks(ctx context.Context, authorID uuid.UUID) ([]book.Book, error) {
	if _, err := s.authors.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.links.ListBooksByAuthor(ctx, authorID)
}

func (s *relationService) bookWithAuthors(ctx context.Context, b *book.Book) (*relation.BookWithAuthors, error) {
	authors, err := s.links.ListAuthorsByBook(ctx, b.ISBN)
	if err != nil {
		return nil, err
	}
	return &relation.BookWithAuthors{
		Book:    *b,
		Authors: authors,
	}, nil
}

func containsAuthor(authors []author.Author, id uuid.UUID) bool {
	for _, a := range authors {
		if a.ID == id {
			return true
		}
	}
	return false
}

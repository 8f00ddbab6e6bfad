package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/domains/relation"
)

// fakeLinkRepo keeps join rows as an ordered slice, mirroring the
// insertion-ordered listing the SQL queries produce.
type fakeLinkRepo struct {
	links   []link
	authors map[uuid.UUID]author.Author
	books   map[string]book.Book
}

type link struct {
	isbn     string
	authorID uuid.UUID
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{
		authors: make(map[uuid.UUID]author.Author),
		books:   make(map[string]book.Book),
	}
}

func (f *fakeLinkRepo) CreateLink(ctx context.Context, isbn string, authorID uuid.UUID) error {
	for _, l := range f.links {
		if l.isbn == isbn && l.authorID == authorID {
			return relation.ErrLinkExists
		}
	}
	f.links = append(f.links, link{isbn: isbn, authorID: authorID})
	return nil
}

func (f *fakeLinkRepo) DeleteLink(ctx context.Context, isbn string, authorID uuid.UUID) error {
	for i, l := range f.links {
		if l.isbn == isbn && l.authorID == authorID {
			f.links = append(f.links[:i], f.links[i+1:]...)
			return nil
		}
	}
	return relation.ErrLinkNotFound
}

func (f *fakeLinkRepo) ListAuthorsByBook(ctx context.Context, isbn string) ([]author.Author, error) {
	authors := []author.Author{}
	for _, l := range f.links {
		if l.isbn == isbn {
			authors = append(authors, f.authors[l.authorID])
		}
	}
	return authors, nil
}

func (f *fakeLinkRepo) ListBooksByAuthor(ctx context.Context, authorID uuid.UUID) ([]book.Book, error) {
	books := []book.Book{}
	for _, l := range f.links {
		if l.authorID == authorID {
			books = append(books, f.books[l.isbn])
		}
	}
	return books, nil
}

// fakeBookRepo and fakeAuthorRepo expose just the lookups the
// relation service touches; the rest of the interface panics so any
// unexpected call fails loudly.
type fakeBookRepo struct {
	books map[string]book.Book
}

func (f *fakeBookRepo) GetByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	b, ok := f.books[isbn]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return &b, nil
}

func (f *fakeBookRepo) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	panic("not used")
}

func (f *fakeBookRepo) GetAll(ctx context.Context) ([]book.Book, error) { panic("not used") }

func (f *fakeBookRepo) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	panic("not used")
}

func (f *fakeBookRepo) Delete(ctx context.Context, isbn string) error { panic("not used") }

type fakeAuthorRepo struct {
	authors map[uuid.UUID]author.Author
}

func (f *fakeAuthorRepo) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return &a, nil
}

func (f *fakeAuthorRepo) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	panic("not used")
}

func (f *fakeAuthorRepo) GetAll(ctx context.Context) ([]author.Author, error) { panic("not used") }

func (f *fakeAuthorRepo) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	panic("not used")
}

func (f *fakeAuthorRepo) Delete(ctx context.Context, id uuid.UUID) error { panic("not used") }

func setup() (relation.Service, *fakeLinkRepo, uuid.UUID) {
	links := newFakeLinkRepo()

	a1 := author.Author{ID: uuid.New(), FirstName: "John", LastName: "Doe"}
	links.authors[a1.ID] = a1
	links.books["978-0-1"] = book.Book{ISBN: "978-0-1", Title: "T", Pages: 100, Published: 2000}

	svc := NewRelationService(
		links,
		&fakeBookRepo{books: links.books},
		&fakeAuthorRepo{authors: links.authors},
	)
	return svc, links, a1.ID
}

func TestAddAuthorToBook(t *testing.T) {
	svc, _, authorID := setup()
	ctx := context.Background()

	result, err := svc.AddAuthorToBook(ctx, "978-0-1", authorID)
	require.NoError(t, err)

	assert.Equal(t, "978-0-1", result.ISBN)
	require.Len(t, result.Authors, 1)
	assert.Equal(t, authorID, result.Authors[0].ID)

	// Bidirectional consistency: the link is visible from both sides.
	books, err := svc.GetAuthorBooks(ctx, authorID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "978-0-1", books[0].ISBN)
}

func TestAddAuthorToBookDuplicate(t *testing.T) {
	svc, links, authorID := setup()
	ctx := context.Background()

	_, err := svc.AddAuthorToBook(ctx, "978-0-1", authorID)
	require.NoError(t, err)

	_, err = svc.AddAuthorToBook(ctx, "978-0-1", authorID)
	assert.ErrorIs(t, err, relation.ErrLinkExists)
	assert.Len(t, links.links, 1, "the failed second add must not mutate the link set")
}

func TestAddAuthorToBookMissingBook(t *testing.T) {
	svc, _, authorID := setup()

	_, err := svc.AddAuthorToBook(context.Background(), "978-0-404", authorID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestAddAuthorToBookMissingAuthor(t *testing.T) {
	svc, links, _ := setup()

	_, err := svc.AddAuthorToBook(context.Background(), "978-0-1", uuid.New())
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	assert.Empty(t, links.links, "no dangling link may be created")
}

func TestRemoveAuthorFromBook(t *testing.T) {
	svc, _, authorID := setup()
	ctx := context.Background()

	_, err := svc.AddAuthorToBook(ctx, "978-0-1", authorID)
	require.NoError(t, err)

	result, err := svc.RemoveAuthorFromBook(ctx, "978-0-1", authorID)
	require.NoError(t, err)
	assert.Empty(t, result.Authors)

	// A second remove is a link-level not-found, distinct from a
	// missing book or author.
	_, err = svc.RemoveAuthorFromBook(ctx, "978-0-1", authorID)
	assert.ErrorIs(t, err, relation.ErrLinkNotFound)
	assert.NotErrorIs(t, err, book.ErrBookNotFound)
	assert.NotErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestRemoveAuthorFromBookNeverLinked(t *testing.T) {
	svc, _, authorID := setup()

	_, err := svc.RemoveAuthorFromBook(context.Background(), "978-0-1", authorID)
	assert.ErrorIs(t, err, relation.ErrLinkNotFound)
}

func TestGetBookAuthorsRequiresBook(t *testing.T) {
	svc, _, _ := setup()
	ctx := context.Background()

	authors, err := svc.GetBookAuthors(ctx, "978-0-1")
	require.NoError(t, err)
	assert.Empty(t, authors)

	_, err = svc.GetBookAuthors(ctx, "978-0-404")
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestGetAuthorBooksRequiresAuthor(t *testing.T) {
	svc, _, authorID := setup()
	ctx := context.Background()

	books, err := svc.GetAuthorBooks(ctx, authorID)
	require.NoError(t, err)
	assert.Empty(t, books)

	_, err = svc.GetAuthorBooks(ctx, uuid.New())
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestLinkLifecycle(t *testing.T) {
	svc, _, authorID := setup()
	ctx := context.Background()

	added, err := svc.AddAuthorToBook(ctx, "978-0-1", authorID)
	require.NoError(t, err)
	require.Len(t, added.Authors, 1)

	removed, err := svc.RemoveAuthorFromBook(ctx, "978-0-1", authorID)
	require.NoError(t, err)
	assert.Empty(t, removed.Authors)

	_, err = svc.RemoveAuthorFromBook(ctx, "978-0-1", authorID)
	assert.ErrorIs(t, err, relation.ErrLinkNotFound)
}

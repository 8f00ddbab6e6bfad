package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/domains/relation"
	"bookshelf-backend/internal/shared/response"
)

// stubService scripts relation.Service responses per test.
type stubService struct {
	addFn    func(ctx context.Context, isbn string, authorID uuid.UUID) (*relation.BookWithAuthors, error)
	removeFn func(ctx context.Context, isbn string, authorID uuid.UUID) (*relation.BookWithAuthors, error)
}

func (s *stubService) AddAuthorToBook(ctx context.Context, isbn string, authorID uuid.UUID) (*relation.BookWithAuthors, error) {
	return s.addFn(ctx, isbn, authorID)
}

func (s *stubService) RemoveAuthorFromBook(ctx context.Context, isbn string, authorID uuid.UUID) (*relation.BookWithAuthors, error) {
	return s.removeFn(ctx, isbn, authorID)
}

func (s *stubService) GetBookAuthors(ctx context.Context, isbn string) ([]author.Author, error) {
	return []author.Author{}, nil
}

func (s *stubService) GetAuthorBooks(ctx context.Context, authorID uuid.UUID) ([]book.Book, error) {
	return []book.Book{}, nil
}

func newRouter(svc relation.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewRelationHandler(svc)

	r := gin.New()
	r.GET("/api/v1/books/:isbn/authors", h.ListBookAuthors)
	r.POST("/api/v1/books/:isbn/authors", h.AttachAuthor)
	r.DELETE("/api/v1/books/:isbn/authors/:authorId", h.DetachAuthor)
	r.GET("/api/v1/authors/:id/books", h.ListAuthorBooks)
	r.POST("/api/v1/authors/:id/books", h.AttachBook)
	r.DELETE("/api/v1/authors/:id/books/:isbn", h.DetachBook)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func TestAttachAuthorReturns201WithAuthors(t *testing.T) {
	authorID := uuid.New()
	svc := &stubService{
		addFn: func(ctx context.Context, isbn string, id uuid.UUID) (*relation.BookWithAuthors, error) {
			assert.Equal(t, "978-0-1", isbn)
			assert.Equal(t, authorID, id)
			return &relation.BookWithAuthors{
				Book:    book.Book{ISBN: isbn, Title: "T"},
				Authors: []author.Author{{ID: id, FirstName: "John", LastName: "Doe"}},
			}, nil
		},
	}

	w, envelope := doJSON(t, newRouter(svc), http.MethodPost, "/api/v1/books/978-0-1/authors",
		`{"authorId":"`+authorID.String()+`"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, envelope.Success)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "978-0-1", data["isbn"])
	authors, ok := data["authors"].([]interface{})
	require.True(t, ok)
	assert.Len(t, authors, 1)
}

func TestAttachAuthorInvalidUUIDReturns400(t *testing.T) {
	svc := &stubService{}

	w, envelope := doJSON(t, newRouter(svc), http.MethodPost, "/api/v1/books/978-0-1/authors",
		`{"authorId":"not-a-uuid"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, envelope.Success)
}

func TestAttachAuthorDuplicateReturns409(t *testing.T) {
	svc := &stubService{
		addFn: func(ctx context.Context, isbn string, id uuid.UUID) (*relation.BookWithAuthors, error) {
			return nil, relation.ErrLinkExists
		},
	}

	w, envelope := doJSON(t, newRouter(svc), http.MethodPost, "/api/v1/books/978-0-1/authors",
		`{"authorId":"`+uuid.NewString()+`"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "CONFLICT", envelope.Error.Code)
}

func TestDetachAuthorLinkNotFoundReturns404(t *testing.T) {
	svc := &stubService{
		removeFn: func(ctx context.Context, isbn string, id uuid.UUID) (*relation.BookWithAuthors, error) {
			return nil, relation.ErrLinkNotFound
		},
	}

	w, envelope := doJSON(t, newRouter(svc), http.MethodDelete,
		"/api/v1/books/978-0-1/authors/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestAttachBookFromAuthorSide(t *testing.T) {
	authorID := uuid.New()
	svc := &stubService{
		addFn: func(ctx context.Context, isbn string, id uuid.UUID) (*relation.BookWithAuthors, error) {
			assert.Equal(t, "978-0-1", isbn)
			assert.Equal(t, authorID, id)
			return &relation.BookWithAuthors{
				Book:    book.Book{ISBN: isbn},
				Authors: []author.Author{{ID: id}},
			}, nil
		},
	}

	w, envelope := doJSON(t, newRouter(svc), http.MethodPost,
		"/api/v1/authors/"+authorID.String()+"/books", `{"isbn":"978-0-1"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, envelope.Success)
}

func TestAttachAuthorMissingBookReturns404(t *testing.T) {
	svc := &stubService{
		addFn: func(ctx context.Context, isbn string, id uuid.UUID) (*relation.BookWithAuthors, error) {
			return nil, book.ErrBookNotFound
		},
	}

	w, _ := doJSON(t, newRouter(svc), http.MethodPost, "/api/v1/books/978-0-404/authors",
		`{"authorId":"`+uuid.NewString()+`"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

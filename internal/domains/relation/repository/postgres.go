package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/domains/relation"
	"bookshelf-backend/pkg/cache"
)

// postgresRepository implements relation.Repository on pgxpool. The
// two linked-list lookups are read-through cached; every link mutation
// drops both sides' entries.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) relation.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const cacheTTL = 15 * time.Minute

func bookAuthorsCacheKey(isbn string) string {
	return "relation:book:" + isbn
}

func authorBooksCacheKey(authorID uuid.UUID) string {
	return "relation:author:" + authorID.String()
}

func (r *postgresRepository) CreateLink(ctx context.Context, isbn string, authorID uuid.UUID) error {
	query := `INSERT INTO book_authors (book_isbn, author_id) VALUES ($1, $2)`

	if _, err := r.pool.Exec(ctx, query, isbn, authorID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				// Pair constraint caught a duplicate that slipped past
				// the service-level membership check.
				return relation.ErrLinkExists
			case "23503":
				// One side was deleted between the existence check and
				// the insert.
				if strings.Contains(pgErr.ConstraintName, "isbn") {
					return book.ErrBookNotFound
				}
				return author.ErrAuthorNotFound
			}
		}
		return fmt.Errorf("failed to create link: %w", err)
	}

	r.invalidate(ctx, isbn, authorID)

	return nil
}

func (r *postgresRepository) DeleteLink(ctx context.Context, isbn string, authorID uuid.UUID) error {
	query := `DELETE FROM book_authors WHERE book_isbn = $1 AND author_id = $2`

	cmdTag, err := r.pool.Exec(ctx, query, isbn, authorID)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return relation.ErrLinkNotFound
	}

	r.invalidate(ctx, isbn, authorID)

	return nil
}

func (r *postgresRepository) ListAuthorsByBook(ctx context.Context, isbn string) ([]author.Author, error) {
	cacheKey := bookAuthorsCacheKey(isbn)

	var authors []author.Author
	if found, err := r.cache.Get(ctx, cacheKey, &authors); err == nil && found {
		return authors, nil
	}

	query := `
        SELECT a.id, a.first_name, a.last_name, a.dob, a.image_url, a.image_key, a.created_at, a.updated_at
        FROM authors a
        JOIN book_authors ba ON ba.author_id = a.id
        WHERE ba.book_isbn = $1
        ORDER BY ba.created_at`

	rows, err := r.pool.Query(ctx, query, isbn)
	if err != nil {
		return nil, fmt.Errorf("failed to query linked authors: %w", err)
	}
	defer rows.Close()

	authors = []author.Author{}
	for rows.Next() {
		var a author.Author
		err := rows.Scan(
			&a.ID,
			&a.FirstName,
			&a.LastName,
			&a.DateOfBirth,
			&a.ImageURL,
			&a.ImageKey,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan linked author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating linked authors: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, authors, cacheTTL)

	return authors, nil
}

func (r *postgresRepository) ListBooksByAuthor(ctx context.Context, authorID uuid.UUID) ([]book.Book, error) {
	cacheKey := authorBooksCacheKey(authorID)

	var books []book.Book
	if found, err := r.cache.Get(ctx, cacheKey, &books); err == nil && found {
		return books, nil
	}

	query := `
        SELECT b.isbn, b.title, b.pages, b.published, b.image_url, b.image_key, b.created_at, b.updated_at
        FROM books b
        JOIN book_authors ba ON ba.book_isbn = b.isbn
        WHERE ba.author_id = $1
        ORDER BY ba.created_at`

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query linked books: %w", err)
	}
	defer rows.Close()

	books = []book.Book{}
	for rows.Next() {
		var b book.Book
		err := rows.Scan(
			&b.ISBN,
			&b.Title,
			&b.Pages,
			&b.Published,
			&b.ImageURL,
			&b.ImageKey,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan linked book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating linked books: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, books, cacheTTL)

	return books, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, isbn string, authorID uuid.UUID) {
	_ = r.cache.Delete(ctx, bookAuthorsCacheKey(isbn), authorBooksCacheKey(authorID))
}

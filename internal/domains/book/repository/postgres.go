package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/pkg/cache"
)

// postgresRepository implements book.Repository on pgxpool with a
// read-through cache for single-row lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) book.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	bookCacheKeyPrefix = "book:"
	cacheTTL           = 15 * time.Minute
)

func bookCacheKey(isbn string) string {
	return bookCacheKeyPrefix + isbn
}

const bookColumns = "isbn, title, pages, published, image_url, image_key, created_at, updated_at"

func scanBook(row pgx.Row, b *book.Book) error {
	return row.Scan(
		&b.ISBN,
		&b.Title,
		&b.Pages,
		&b.Published,
		&b.ImageURL,
		&b.ImageKey,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
        INSERT INTO books (isbn, title, pages, published, image_url, image_key)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + bookColumns

	var created book.Book
	err := scanBook(r.pool.QueryRow(
		ctx,
		query,
		b.ISBN,
		b.Title,
		b.Pages,
		b.Published,
		b.ImageURL,
		b.ImageKey,
	), &created)
	if err != nil {
		// The primary-key violation is the uniqueness guard; surface
		// it as a typed conflict.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, book.ErrDuplicateISBN
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	cacheKey := bookCacheKey(isbn)

	var b book.Book
	if found, err := r.cache.Get(ctx, cacheKey, &b); err == nil && found {
		return &b, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1`

	err := scanBook(r.pool.QueryRow(ctx, query, isbn), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by isbn: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, b, cacheTTL)

	return &b, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]book.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := []book.Book{}
	for rows.Next() {
		var b book.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
        UPDATE books
        SET title = $1,
            pages = $2,
            published = $3,
            image_url = $4,
            image_key = $5,
            updated_at = NOW()
        WHERE isbn = $6
        RETURNING ` + bookColumns

	var updated book.Book
	err := scanBook(r.pool.QueryRow(
		ctx,
		query,
		b.Title,
		b.Pages,
		b.Published,
		b.ImageURL,
		b.ImageKey,
		b.ISBN,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	r.invalidate(ctx, b.ISBN)

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, isbn string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE isbn = $1`, isbn)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	r.invalidate(ctx, isbn)

	return nil
}

// invalidate drops the entity entry and every cached link list, which
// embeds book fields and would otherwise serve stale rows until TTL.
func (r *postgresRepository) invalidate(ctx context.Context, isbn string) {
	_ = r.cache.Delete(ctx, bookCacheKey(isbn))
	_ = r.cache.DeletePattern(ctx, "relation:*")
}

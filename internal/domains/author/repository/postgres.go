package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/pkg/cache"
)

// postgresRepository implements author.Repository on pgxpool with a
// read-through cache for single-row lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	authorCacheKeyPrefix = "author:"
	cacheTTL             = 15 * time.Minute
)

func authorCacheKey(id uuid.UUID) string {
	return authorCacheKeyPrefix + id.String()
}

const authorColumns = "id, first_name, last_name, dob, image_url, image_key, created_at, updated_at"

func scanAuthor(row pgx.Row, a *author.Author) error {
	return row.Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.DateOfBirth,
		&a.ImageURL,
		&a.ImageKey,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        INSERT INTO authors (id, first_name, last_name, dob, image_url, image_key)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + authorColumns

	var created author.Author
	err := scanAuthor(r.pool.QueryRow(
		ctx,
		query,
		a.ID,
		a.FirstName,
		a.LastName,
		a.DateOfBirth,
		a.ImageURL,
		a.ImageKey,
	), &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	cacheKey := authorCacheKey(id)

	var a author.Author
	if found, err := r.cache.Get(ctx, cacheKey, &a); err == nil && found {
		return &a, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	err := scanAuthor(r.pool.QueryRow(ctx, query, id), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	// Best effort; a failed cache write never fails the read.
	_ = r.cache.Set(ctx, cacheKey, a, cacheTTL)

	return &a, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]author.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := []author.Author{}
	for rows.Next() {
		var a author.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        UPDATE authors
        SET first_name = $1,
            last_name = $2,
            dob = $3,
            image_url = $4,
            image_key = $5,
            updated_at = NOW()
        WHERE id = $6
        RETURNING ` + authorColumns

	var updated author.Author
	err := scanAuthor(r.pool.QueryRow(
		ctx,
		query,
		a.FirstName,
		a.LastName,
		a.DateOfBirth,
		a.ImageURL,
		a.ImageKey,
		a.ID,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.invalidate(ctx, a.ID)

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	r.invalidate(ctx, id)

	return nil
}

// invalidate drops the entity entry and every cached link list, which
// embeds author fields and would otherwise serve stale rows until TTL.
func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	_ = r.cache.Delete(ctx, authorCacheKey(id))
	_ = r.cache.DeletePattern(ctx, "relation:*")
}

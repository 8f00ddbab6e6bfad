package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/infrastructure/queue"
	"bookshelf-backend/internal/infrastructure/storage"
	"bookshelf-backend/internal/shared/upload"
)

// bookService implements book.Service.
type bookService struct {
	repo      book.Repository
	storage   storage.ObjectStorage
	processor *storage.ImageProcessor
	enqueuer  queue.Enqueuer
}

func NewBookService(
	repo book.Repository,
	store storage.ObjectStorage,
	processor *storage.ImageProcessor,
	enqueuer queue.Enqueuer,
) book.Service {
	return &bookService{
		repo:      repo,
		storage:   store,
		processor: processor,
		enqueuer:  enqueuer,
	}
}

func (s *bookService) List(ctx context.Context) ([]book.Book, error) {
	return s.repo.GetAll(ctx)
}

func (s *bookService) Create(ctx context.Context, req *book.CreateBookRequest, image *upload.Image) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b := req.ToEntity()
	b.ISBN = strings.TrimSpace(b.ISBN)
	b.Title = strings.TrimSpace(b.Title)

	if image != nil {
		url, key, err := s.uploadImage(ctx, b.ISBN, image)
		if err != nil {
			return nil, err
		}
		b.ImageURL = url
		b.ImageKey = key
	}

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		// The upload already happened; hand the orphaned object to the
		// worker. Covers the duplicate-isbn conflict as well.
		s.scheduleImageCleanup(ctx, b.ImageKey)
		return nil, err
	}

	return created, nil
}

func (s *bookService) GetByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, book.ErrBookNotFound
	}
	return s.repo.GetByISBN(ctx, isbn)
}

func (s *bookService) Update(ctx context.Context, isbn string, req *book.UpdateBookRequest, image *upload.Image) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	updated := *current
	req.Apply(&updated)

	oldKey := current.ImageKey
	if image != nil {
		url, key, err := s.uploadImage(ctx, isbn, image)
		if err != nil {
			return nil, err
		}
		updated.ImageURL = url
		updated.ImageKey = key
	}

	result, err := s.repo.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}

	if image != nil && oldKey != "" && oldKey != updated.ImageKey {
		s.scheduleImageCleanup(ctx, oldKey)
	}

	return result, nil
}

func (s *bookService) Delete(ctx context.Context, isbn string) (string, error) {
	b, err := s.repo.GetByISBN(ctx, isbn)
	if err != nil {
		return "", err
	}

	// The stored image goes first; a storage failure aborts the whole
	// delete so the record never outlives a half-removed blob.
	if b.ImageKey != "" {
		if err := s.storage.Delete(ctx, b.ImageKey); err != nil {
			return "", fmt.Errorf("failed to delete book image: %w", err)
		}
	}

	if err := s.repo.Delete(ctx, isbn); err != nil {
		return "", err
	}

	return fmt.Sprintf("Book with ISBN %s successfully removed", isbn), nil
}

func (s *bookService) uploadImage(ctx context.Context, isbn string, image *upload.Image) (url, key string, err error) {
	if err := image.Validate(); err != nil {
		return "", "", err
	}

	data, err := s.processor.NormalizeJPEG(image.Data)
	if err != nil {
		return "", "", err
	}

	key = fmt.Sprintf("books/%s/%s", isbn, image.SafeName())
	url, err = s.storage.Upload(ctx, key, data, "image/jpeg")
	if err != nil {
		return "", "", fmt.Errorf("failed to upload book image: %w", err)
	}

	return url, key, nil
}

func (s *bookService) scheduleImageCleanup(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.enqueuer.EnqueueImageDelete(ctx, key); err != nil {
		// Best effort only; the periodic sweep catches what this misses.
		log.Warn().Err(err).Str("key", key).Msg("Failed to enqueue image cleanup")
	}
}

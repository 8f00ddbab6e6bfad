package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/infrastructure/queue"
	"bookshelf-backend/internal/infrastructure/storage"
	"bookshelf-backend/internal/shared/upload"
)

// authorService implements author.Service.
type authorService struct {
	repo      author.Repository
	storage   storage.ObjectStorage
	processor *storage.ImageProcessor
	enqueuer  queue.Enqueuer
}

func NewAuthorService(
	repo author.Repository,
	store storage.ObjectStorage,
	processor *storage.ImageProcessor,
	enqueuer queue.Enqueuer,
) author.Service {
	return &authorService{
		repo:      repo,
		storage:   store,
		processor: processor,
		enqueuer:  enqueuer,
	}
}

func (s *authorService) List(ctx context.Context) ([]author.Author, error) {
	return s.repo.GetAll(ctx)
}

func (s *authorService) Create(ctx context.Context, req *author.CreateAuthorRequest, image *upload.Image) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dob, err := req.DOB()
	if err != nil {
		return nil, err
	}

	// The id is generated here, not by the database, because the
	// storage key needs it before the row exists.
	a := &author.Author{
		ID:          uuid.New(),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		DateOfBirth: dob,
	}

	if image != nil {
		url, key, err := s.uploadImage(ctx, a.ID, image)
		if err != nil {
			return nil, err
		}
		a.ImageURL = url
		a.ImageKey = key
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		// The upload already happened; hand the orphaned object to the
		// worker so the bucket does not accumulate garbage.
		s.scheduleImageCleanup(ctx, a.ImageKey)
		return nil, err
	}

	return created, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	if id == uuid.Nil {
		return nil, author.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *author.UpdateAuthorRequest, image *upload.Image) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if err := req.Apply(&updated); err != nil {
		return nil, err
	}

	oldKey := current.ImageKey
	if image != nil {
		url, key, err := s.uploadImage(ctx, id, image)
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

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) (string, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	// The stored image goes first; a storage failure aborts the whole
	// delete so the record never outlives a half-removed blob.
	if a.ImageKey != "" {
		if err := s.storage.Delete(ctx, a.ImageKey); err != nil {
			return "", fmt.Errorf("failed to delete author image: %w", err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return "", err
	}

	return fmt.Sprintf("Author with ID %s successfully removed", id), nil
}

func (s *authorService) uploadImage(ctx context.Context, id uuid.UUID, image *upload.Image) (url, key string, err error) {
	if err := image.Validate(); err != nil {
		return "", "", err
	}

	data, err := s.processor.NormalizeJPEG(image.Data)
	if err != nil {
		return "", "", err
	}

	key = fmt.Sprintf("authors/%s/%s", id, image.SafeName())
	url, err = s.storage.Upload(ctx, key, data, "image/jpeg")
	if err != nil {
		return "", "", fmt.Errorf("failed to upload author image: %w", err)
	}

	return url, key, nil
}

func (s *authorService) scheduleImageCleanup(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.enqueuer.EnqueueImageDelete(ctx, key); err != nil {
		// Best effort only; the periodic sweep catches what this misses.
		log.Warn().Err(err).Str("key", key).Msg("Failed to enqueue image cleanup")
	}
}

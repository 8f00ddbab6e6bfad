package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"bookshelf-backend/internal/infrastructure/storage"
)

// ImageDeleteHandler removes one object from storage.
type ImageDeleteHandler struct {
	storage storage.ObjectStorage
}

func NewImageDeleteHandler(store storage.ObjectStorage) *ImageDeleteHandler {
	return &ImageDeleteHandler{storage: store}
}

func (h *ImageDeleteHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload ImageDeletePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	if err := h.storage.Delete(ctx, payload.Key); err != nil {
		log.Error().Err(err).Str("key", payload.Key).Msg("Failed to delete image")
		return fmt.Errorf("delete image: %w", err)
	}

	log.Info().Str("key", payload.Key).Msg("Deleted orphaned image")
	return nil
}

// ImageSweepHandler deletes bucket objects that no author or book row
// references anymore. Objects younger than minAge are skipped so a
// sweep never races an in-flight create (upload happens before the
// row exists).
type ImageSweepHandler struct {
	storage storage.ObjectStorage
	pool    *pgxpool.Pool
	minAge  time.Duration
}

func NewImageSweepHandler(store storage.ObjectStorage, pool *pgxpool.Pool, minAge time.Duration) *ImageSweepHandler {
	return &ImageSweepHandler{
		storage: store,
		pool:    pool,
		minAge:  minAge,
	}
}

func (h *ImageSweepHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	referenced, err := h.referencedKeys(ctx)
	if err != nil {
		return fmt.Errorf("load referenced keys: %w", err)
	}

	cutoff := time.Now().Add(-h.minAge)
	removed := 0

	for _, prefix := range []string{"authors/", "books/"} {
		objects, err := h.storage.List(ctx, prefix)
		if err != nil {
			return fmt.Errorf("list %s: %w", prefix, err)
		}

		for _, object := range objects {
			if referenced[object.Key] || object.LastModified.After(cutoff) {
				continue
			}
			if err := h.storage.Delete(ctx, object.Key); err != nil {
				log.Error().Err(err).Str("key", object.Key).Msg("Sweep failed to delete object")
				continue
			}
			removed++
		}
	}

	log.Info().Int("removed", removed).Msg("Image sweep completed")
	return nil
}

func (h *ImageSweepHandler) referencedKeys(ctx context.Context) (map[string]bool, error) {
	query := `
        SELECT image_key FROM authors WHERE image_key <> ''
        UNION
        SELECT image_key FROM books WHERE image_key <> ''
    `

	rows, err := h.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query image keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan image key: %w", err)
		}
		keys[key] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating image keys: %w", err)
	}

	return keys, nil
}

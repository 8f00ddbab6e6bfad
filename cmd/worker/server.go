package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookshelf-backend/internal/infrastructure/queue"
	"bookshelf-backend/pkg/container"
)

// asynqServer wraps asynq.Server so main only deals with Shutdown.
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer wires the task handlers and starts processing.
func setupAsynqServer(c *container.Container) *asynqServer {
	mux := asynq.NewServeMux()
	mux.Handle(queue.TypeImageDelete, queue.NewImageDeleteHandler(c.Storage))
	mux.Handle(queue.TypeImageSweep, queue.NewImageSweepHandler(
		c.Storage,
		c.DB.Pool,
		c.Config.Queue.SweepMinAge,
	))

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Concurrency: c.Config.Queue.Concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).Msg("[Asynq] ❌ Task failed")
			}),
		},
	)

	go func() {
		log.Info().Msg("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("[Worker] Failed")
		}
	}()

	return &asynqServer{Server: srv}
}

func (s *asynqServer) Shutdown() {
	log.Info().Msg("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Info().Msg("[Worker] ✓ Stopped")
}

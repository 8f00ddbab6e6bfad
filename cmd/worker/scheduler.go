package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookshelf-backend/internal/infrastructure/queue"
	"bookshelf-backend/pkg/container"
)

// asynqScheduler wraps asynq.Scheduler so main only deals with
// Shutdown.
type asynqScheduler struct {
	*asynq.Scheduler
}

// setupScheduler registers the periodic image sweep. An empty sweep
// schedule disables it.
func setupScheduler(c *container.Container) *asynqScheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		nil,
	)

	if spec := c.Config.Queue.SweepSchedule; spec != "" {
		task := asynq.NewTask(queue.TypeImageSweep, nil)
		if _, err := scheduler.Register(spec, task); err != nil {
			log.Fatal().Err(err).Msg("[Scheduler] Failed to register image sweep")
		}
		log.Info().Str("schedule", spec).Msg("[Scheduler] Image sweep registered")
	}

	go func() {
		log.Info().Msg("[Scheduler] Starting...")
		if err := scheduler.Run(); err != nil {
			log.Fatal().Err(err).Msg("[Scheduler] Failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Info().Msg("[Scheduler] ✓ Stopped")
}

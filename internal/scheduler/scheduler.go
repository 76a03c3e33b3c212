package scheduler

import (
	"time"

	"skincare-backend/internal/auth"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

var scheduler *gocron.Scheduler

// Initialize creates the scheduler and registers the blocklist sweep.
// The sweep cadence has no correctness requirement beyond running
// often enough that the table does not grow unbounded.
func Initialize(blocklist *auth.BlocklistService, intervalHours int) error {
	scheduler = gocron.NewScheduler(time.Local)

	if intervalHours <= 0 {
		intervalHours = 1
	}

	_, err := scheduler.Every(intervalHours).Hours().Do(func() {
		count, err := blocklist.PurgeExpired(time.Now())
		if err != nil {
			log.Error().Err(err).Msg("Blocklist sweep failed")
			return
		}
		log.Debug().Int64("count", count).Msg("Blocklist sweep completed")
	})
	if err != nil {
		return err
	}

	// Start scheduler in a separate goroutine
	scheduler.StartAsync()
	return nil
}

// Stop gracefully shuts down the scheduler
func Stop() {
	if scheduler != nil {
		scheduler.Stop()
	}
}

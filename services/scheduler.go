// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

// dailyRetryInterval re-runs the daily check between midnights so a failed
// or missed transition is picked up without waiting a full day.
const dailyRetryInterval = 15 * time.Minute

// DailyScheduler drives DailyQuestService.CheckAndReset: once at startup,
// every local midnight, and on a short retry interval.
type DailyScheduler struct {
	sched gocron.Scheduler
}

func StartDailyScheduler(daily *DailyQuestService, clock clockwork.Clock, loc *time.Location) (*DailyScheduler, error) {
	sched, err := gocron.NewScheduler(
		gocron.WithLocation(loc),
		gocron.WithClock(clock),
	)
	if err != nil {
		return nil, err
	}

	run := func(trigger string) func(ctx context.Context) {
		return func(ctx context.Context) {
			if _, err := daily.CheckAndReset(ctx); err != nil {
				log.Printf("[Scheduler] Daily check (%s) failed: %v", trigger, err)
			}
		}
	}

	// Midnight: roll the daily slate (also runs once right away, in case
	// the process was down at midnight).
	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(run("midnight")),
		gocron.WithName("daily-quest-reset"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(dailyRetryInterval),
		gocron.NewTask(run("retry")),
		gocron.WithName("daily-quest-retry"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	log.Println("⏰ [Scheduler] Daily quest jobs scheduled")
	return &DailyScheduler{sched: sched}, nil
}

// Stop waits for running jobs and shuts the scheduler down.
func (d *DailyScheduler) Stop() error {
	return d.sched.Shutdown()
}

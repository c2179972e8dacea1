package cronjob

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/tongcompany/intake-portal/internal/reminder"
)

// Scheduler runs the reminder sweep in-process on a cron schedule, so
// the portal does not depend on an external cron service hitting the
// trigger endpoint.
type Scheduler struct {
	scanner   *reminder.Scanner
	schedule  string
	staleDays int
	c         *cron.Cron
}

func NewScheduler(scanner *reminder.Scanner, schedule string, staleDays int) *Scheduler {
	return &Scheduler{scanner: scanner, schedule: schedule, staleDays: staleDays}
}

// Start initializes the cron task. An empty schedule disables it.
func (s *Scheduler) Start() {
	if s.schedule == "" {
		log.Info().Msg("reminder scheduler disabled")
		return
	}

	s.c = cron.New(cron.WithSeconds())

	_, err := s.c.AddFunc(s.schedule, func() {
		log.Info().Msg("scheduled reminder scan started")
		s.scanner.Scan(context.Background(), time.Now(), s.staleDays)
	})
	if err != nil {
		log.Error().Err(err).Str("schedule", s.schedule).Msg("failed to create reminder cron job")
		return
	}

	log.Info().Str("schedule", s.schedule).Msg("reminder scheduler started")
	s.c.Start()
}

// Stop halts the scheduler; running jobs finish.
func (s *Scheduler) Stop() {
	if s.c != nil {
		s.c.Stop()
	}
}

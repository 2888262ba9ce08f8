package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"haunters/config"
	"haunters/shared/timezone"
)

// Jobs are the background operations the scheduler drives.
type Jobs interface {
	SweepAutoRelease(ctx context.Context) (int, error)
	SendDailyReminders(ctx context.Context) (int, error)
	ExpireStale(ctx context.Context) error
}

type Scheduler struct {
	jobs     Jobs
	cfg      *config.Config
	stopChan chan struct{}
}

func New(jobs Jobs, cfg *config.Config) *Scheduler {
	return &Scheduler{
		jobs:     jobs,
		cfg:      cfg,
		stopChan: make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	log.Info().
		Int("sweep_interval_min", s.cfg.Escrow.SweepIntervalMin).
		Int("reminder_hour", s.cfg.Escrow.ReminderHour).
		Msg("Starting background scheduler")

	go s.runSweepTask(ctx)
	go s.runDailyTask(ctx, s.cfg.Escrow.ReminderHour, "daily reminders", s.sendReminders)
	go s.runDailyTask(ctx, s.cfg.Escrow.ExpirationCheckHour, "expiration check", s.expireStale)
}

func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping background scheduler")
	close(s.stopChan)
}

func (s *Scheduler) runSweepTask(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(time.Duration(s.cfg.Escrow.SweepIntervalMin) * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			log.Info().Msg("Auto-release sweep stopped")

			return
		case <-ctx.Done():
			log.Info().Msg("Auto-release sweep cancelled")

			return
		}
	}
}

// runDailyTask fires the given job once a day at the configured hour.
func (s *Scheduler) runDailyTask(ctx context.Context, hour int, name string, job func(context.Context)) {
	for {
		timer := time.NewTimer(untilNextHour(timezone.Now(), hour))

		select {
		case <-timer.C:
			job(ctx)
		case <-s.stopChan:
			timer.Stop()
			log.Info().Str("task", name).Msg("Daily task stopped")

			return
		case <-ctx.Done():
			timer.Stop()
			log.Info().Str("task", name).Msg("Daily task cancelled")

			return
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	released, err := s.jobs.SweepAutoRelease(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Auto-release sweep failed")

		return
	}

	if released > 0 {
		log.Info().Int("released", released).Msg("Auto-release sweep completed")
	}
}

func (s *Scheduler) sendReminders(ctx context.Context) {
	sent, err := s.jobs.SendDailyReminders(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Daily reminder run failed")

		return
	}

	log.Info().Int("reminded", sent).Msg("Daily reminder run completed")
}

func (s *Scheduler) expireStale(ctx context.Context) {
	if err := s.jobs.ExpireStale(ctx); err != nil {
		log.Error().Err(err).Msg("Expiration check failed")
	}
}

func untilNextHour(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next.Sub(now)
}

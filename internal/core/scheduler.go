package core

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/mkrol/bike-hunter/internal/search"
)

// Scheduler fires automatic quick searches on a fixed interval and
// enforces the batch retention policy once a day.
type Scheduler struct {
	cron     *cron.Cron
	service  *SearchService
	profile  search.Profile
	spec     string
	keepDays int
}

func NewScheduler(service *SearchService, profile search.Profile, intervalHours, keepDays int) *Scheduler {
	if intervalHours < 1 {
		intervalHours = 6
	}
	if keepDays < 1 {
		keepDays = 30
	}
	return &Scheduler{
		cron:     cron.New(),
		service:  service,
		profile:  profile,
		spec:     fmt.Sprintf("@every %dh", intervalHours),
		keepDays: keepDays,
	}
}

// Start registers the jobs and starts the cron loop. One quick search
// runs immediately so a fresh deployment reports right away.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.runAuto(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	if _, err := s.cron.AddFunc("@every 24h", func() { s.cleanup() }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("Scheduler: started, search spec %s, retention %d days", s.spec, s.keepDays)

	go s.runAuto(ctx)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("Scheduler: stopped")
}

func (s *Scheduler) runAuto(ctx context.Context) {
	if _, err := s.service.Run(ctx, s.profile, search.ModeQuick); err != nil {
		log.Printf("Scheduler: auto search failed: %v", err)
	}
}

func (s *Scheduler) cleanup() {
	deleted, remaining, err := s.service.store.DeleteOlderThan(s.keepDays)
	if err != nil {
		log.Printf("Scheduler: retention cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Scheduler: retention removed %d old batches, %d remain", deleted, remaining)
	}
}

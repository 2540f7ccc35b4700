package core

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mkrol/bike-hunter/internal/notify"
	"github.com/mkrol/bike-hunter/internal/observability"
	"github.com/mkrol/bike-hunter/internal/search"
	"github.com/mkrol/bike-hunter/internal/store"
)

// SearchService is the invocation boundary around the pipeline: it runs
// one search, stores the batch and notifies the operator. Safe to call
// repeatedly; overlapping runs are the scheduler's concern, not handled
// here.
type SearchService struct {
	pipeline *search.Pipeline
	store    *store.FileStore
	notifier notify.Notifier
}

func NewSearchService(pipeline *search.Pipeline, fileStore *store.FileStore, notifier notify.Notifier) *SearchService {
	return &SearchService{
		pipeline: pipeline,
		store:    fileStore,
		notifier: notifier,
	}
}

// Run executes one search end to end. A store failure is returned to the
// caller but does not invalidate the completed search: the results are
// still handed back and the caller decides whether to retry the store.
func (s *SearchService) Run(ctx context.Context, profile search.Profile, mode search.Mode) ([]search.Ad, error) {
	log.Printf("Search: starting %s search for %s %s", mode, profile.Brand, profile.Model)
	observability.IncSearchesRun()

	results, err := s.pipeline.Run(ctx, profile, mode)
	if err != nil {
		return nil, fmt.Errorf("search run: %w", err)
	}

	var storeErr error
	receipt, err := s.store.Store(results, time.Now())
	if err != nil {
		observability.IncError(observability.ErrorStore, "search_service")
		log.Printf("Search: failed to store %d results: %v", len(results), err)
		storeErr = fmt.Errorf("store results: %w", err)
	} else {
		log.Printf("Search: stored %d results to %s (high relevance: %d)",
			receipt.Count, receipt.Filename, receipt.HighRelevanceCount)
	}

	if s.notifier != nil {
		if len(results) > 0 {
			s.notifier.MatchesFound(results)
		} else {
			s.notifier.NoMatches()
		}
	}

	return results, storeErr
}

package search

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"github.com/mkrol/bike-hunter/internal/observability"
)

// Fetcher retrieves one search-results page. The production
// implementation lives in internal/httpx and carries the politeness rate
// limit; tests inject stubs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Pipeline drives the full location x term x page matrix for one profile
// and hands back the deduplicated post-theft candidate set. It keeps no
// state between runs.
type Pipeline struct {
	fetcher   Fetcher
	extractor *Extractor
	base      string
}

func NewPipeline(fetcher Fetcher, baseURL string) (*Pipeline, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	extractor, err := NewExtractor(baseURL)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		fetcher:   fetcher,
		extractor: extractor,
		base:      baseURL,
	}, nil
}

// Run executes one sequential search. Single-page failures are logged and
// skipped; only an invalid profile or a cancelled context aborts the run.
// Every returned ad passed the temporal filter, and URLs are unique.
func (p *Pipeline) Run(ctx context.Context, profile Profile, mode Mode) ([]Ad, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	theft, err := profile.TheftTime()
	if err != nil {
		return nil, err
	}

	filter := NewTemporalFilter(NewDateRules(theft))
	scorer := NewScorer(profile)
	locations, terms, pages := mode.Bounds(profile)

	slog.Info("search started",
		"mode", string(mode),
		"locations", len(locations),
		"terms", len(terms),
		"pages", pages)

	var all []Ad
	structureWarned := false

	for _, location := range locations {
		for _, term := range terms {
			for page := 1; page <= pages; page++ {
				if err := ctx.Err(); err != nil {
					return nil, fmt.Errorf("search aborted: %w", err)
				}

				target, err := BuildSearchURL(p.base, term, location, profile.MinPrice, profile.MaxPrice, page)
				if err != nil {
					slog.Warn("skipping combination", "location", location, "term", term, "error", err)
					observability.IncError(observability.ErrorQuery, "pipeline")
					break
				}

				body, err := p.fetcher.Fetch(ctx, target)
				if err != nil {
					slog.Warn("page fetch failed", "url", target, "error", err)
					observability.IncError(observability.ClassifyFetchError(err), "fetcher")
					continue
				}
				observability.IncPagesFetched()

				doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
				if err != nil {
					slog.Warn("page parse failed", "url", target, "error", err)
					observability.IncError(observability.ErrorParsing, "extractor")
					continue
				}

				containers := p.extractor.Containers(doc)
				if containers.Length() == 0 {
					// End of results for this pair, or the markup changed
					// under us; say so once so truncation isn't silent.
					if !structureWarned {
						slog.Warn("no ad containers found; end of results or marketplace markup changed", "url", target)
						structureWarned = true
					}
					break
				}

				extracted, matched := 0, 0
				containers.Each(func(_ int, sel *goquery.Selection) {
					ad, err := p.extractor.Extract(sel)
					if err != nil {
						observability.IncError(observability.ErrorParsing, "extractor")
						return
					}
					extracted++
					observability.IncAdsExtracted()

					ad.RelevanceScore = scorer.Score(ad.Title)
					ad.PostedAfterTheft = filter.PostedAfterTheft(sel)
					if !ad.PostedAfterTheft {
						return
					}
					matched++
					all = append(all, *ad)
				})

				slog.Info("page scanned",
					"location", location,
					"term", term,
					"page", page,
					"ads", extracted,
					"after_theft", matched)
			}
		}
	}

	unique := Dedupe(all)
	for range unique {
		observability.IncAdsMatched()
	}
	slog.Info("search finished", "raw", len(all), "unique", len(unique))
	return unique, nil
}

// Package store persists search result batches as one JSON file per run
// and serves aggregate statistics across them.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/mkrol/bike-hunter/internal/search"
)

var ErrNotFound = errors.New("result batch not found")

const stampLayout = "20060102_150405"

// batchNameRe also guards Get against path traversal: only names we could
// have written are ever opened.
var batchNameRe = regexp.MustCompile(`^results_\d{8}_\d{6}\.json$`)

// Batch is one stored search run.
type Batch struct {
	Timestamp  string      `json:"timestamp"`
	SearchTime string      `json:"search_time"`
	Count      int         `json:"count"`
	Results    []search.Ad `json:"results"`
	Summary    Summary     `json:"summary"`
}

type Summary struct {
	TotalAds         int      `json:"total_ads"`
	HighRelevance    int      `json:"high_relevance"`
	PostedAfterTheft int      `json:"posted_after_theft"`
	URLs             []string `json:"urls"`
}

// Receipt acknowledges one successful Store call.
type Receipt struct {
	Filename              string `json:"filename"`
	Count                 int    `json:"count"`
	HighRelevanceCount    int    `json:"high_relevance_count"`
	PostedAfterTheftCount int    `json:"posted_after_theft_count"`
}

// BatchInfo is a listing entry for one stored batch.
type BatchInfo struct {
	Filename         string `json:"filename"`
	Timestamp        string `json:"timestamp"`
	Count            int    `json:"count"`
	HighRelevance    int    `json:"high_relevance"`
	PostedAfterTheft int    `json:"posted_after_theft"`
}

// Stats aggregates across every stored batch.
type Stats struct {
	TotalSearches      int    `json:"total_searches"`
	TotalResults       int    `json:"total_results"`
	TotalHighRelevance int    `json:"total_high_relevance"`
	TotalAfterTheft    int    `json:"total_after_theft"`
	StorageDirectory   string `json:"storage_directory"`
}

// FileStore keeps batches under a single directory. The mutex serializes
// writers so each Store call succeeds or fails atomically.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("store: empty data directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Store writes one result batch, named by the search time. The file is
// written to a temp name and renamed so readers never see a partial
// batch.
func (s *FileStore) Store(results []search.Ad, ts time.Time) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := summarize(results)
	stamp := ts.Format(stampLayout)
	batch := Batch{
		Timestamp:  ts.Format("2006-01-02"),
		SearchTime: stamp,
		Count:      len(results),
		Results:    results,
		Summary:    summary,
	}

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return Receipt{}, fmt.Errorf("store: encode batch: %w", err)
	}

	filename := "results_" + stamp + ".json"
	tmp := filepath.Join(s.dir, filename+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return Receipt{}, fmt.Errorf("store: write batch: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, filename)); err != nil {
		os.Remove(tmp)
		return Receipt{}, fmt.Errorf("store: finalize batch: %w", err)
	}

	return Receipt{
		Filename:              filename,
		Count:                 len(results),
		HighRelevanceCount:    summary.HighRelevance,
		PostedAfterTheftCount: summary.PostedAfterTheft,
	}, nil
}

// ListRecent returns up to limit batches, most recent first. Unreadable
// files are skipped rather than failing the listing.
func (s *FileStore) ListRecent(limit int) ([]BatchInfo, error) {
	if limit <= 0 {
		limit = 10
	}

	names, err := s.batchNames()
	if err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	infos := make([]BatchInfo, 0, limit)
	for _, name := range names {
		if len(infos) >= limit {
			break
		}
		batch, err := s.read(name)
		if err != nil {
			continue
		}
		infos = append(infos, BatchInfo{
			Filename:         name,
			Timestamp:        batch.SearchTime,
			Count:            batch.Count,
			HighRelevance:    batch.Summary.HighRelevance,
			PostedAfterTheft: batch.Summary.PostedAfterTheft,
		})
	}
	return infos, nil
}

// Get fetches one stored batch by filename.
func (s *FileStore) Get(filename string) (*Batch, error) {
	if !batchNameRe.MatchString(filename) {
		return nil, ErrNotFound
	}
	batch, err := s.read(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return batch, nil
}

// Stats aggregates every stored batch; unreadable files are skipped.
func (s *FileStore) Stats() (Stats, error) {
	names, err := s.batchNames()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{StorageDirectory: s.dir}
	for _, name := range names {
		batch, err := s.read(name)
		if err != nil {
			continue
		}
		stats.TotalSearches++
		stats.TotalResults += batch.Count
		stats.TotalHighRelevance += batch.Summary.HighRelevance
		stats.TotalAfterTheft += batch.Summary.PostedAfterTheft
	}
	return stats, nil
}

// DeleteOlderThan removes batches whose file is older than keepDays days.
// Returns deleted and remaining counts.
func (s *FileStore) DeleteOlderThan(keepDays int) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := s.batchNames()
	if err != nil {
		return 0, 0, err
	}

	cutoff := time.Now().AddDate(0, 0, -keepDays)
	deleted := 0
	for _, name := range names {
		path := filepath.Join(s.dir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				continue
			}
			deleted++
		}
	}
	return deleted, len(names) - deleted, nil
}

func (s *FileStore) batchNames() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("store: read data directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if batchNameRe.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *FileStore) read(filename string) (*Batch, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, err
	}
	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", filename, err)
	}
	return &batch, nil
}

func summarize(results []search.Ad) Summary {
	summary := Summary{
		TotalAds: len(results),
		URLs:     make([]string, 0, len(results)),
	}
	for _, ad := range results {
		if ad.RelevanceScore >= search.HighRelevanceThreshold {
			summary.HighRelevance++
		}
		if ad.PostedAfterTheft {
			summary.PostedAfterTheft++
		}
		summary.URLs = append(summary.URLs, ad.URL)
	}
	return summary
}

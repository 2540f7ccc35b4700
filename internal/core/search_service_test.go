package core_test

import (
	"context"
	"testing"

	"github.com/mkrol/bike-hunter/internal/core"
	"github.com/mkrol/bike-hunter/internal/notify"
	"github.com/mkrol/bike-hunter/internal/search"
	"github.com/mkrol/bike-hunter/internal/store"
)

type recordingNotifier struct {
	found     int
	noMatches int
	lastAds   []search.Ad
}

func (n *recordingNotifier) MatchesFound(ads []search.Ad) {
	n.found++
	n.lastAds = ads
}

func (n *recordingNotifier) NoMatches() {
	n.noMatches++
}

var _ notify.Notifier = (*recordingNotifier)(nil)

type pageFetcher struct {
	page []byte
}

func (f *pageFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	return f.page, nil
}

const matchPage = `
<div data-cy="l-card">
  <a href="/d/oferta/rockrider-expl-500-ID1.html"><h6>Rockrider EXPL 500 czarny</h6></a>
  <p data-testid="ad-price">1200 zł</p>
  <p data-testid="location-date">Warszawa - dziś o 12:00</p>
</div>`

func testService(t *testing.T, page string) (*core.SearchService, *store.FileStore, *recordingNotifier) {
	t.Helper()

	pipeline, err := search.NewPipeline(&pageFetcher{page: []byte(page)}, "https://www.olx.pl")
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	fileStore, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	notifier := &recordingNotifier{}
	return core.NewSearchService(pipeline, fileStore, notifier), fileStore, notifier
}

func testProfile() search.Profile {
	return search.Profile{
		Brand:     "Rockrider",
		Model:     "EXPL 500",
		Color:     "black",
		MinPrice:  400,
		MaxPrice:  2500,
		TheftDate: "2025-08-13",
		Locations: []string{"warszawa"},
	}
}

func TestSearchService_RunStoresAndNotifies(t *testing.T) {
	service, fileStore, notifier := testService(t, matchPage)

	results, err := service.Run(context.Background(), testProfile(), search.ModeQuick)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	if notifier.found != 1 || notifier.noMatches != 0 {
		t.Errorf("notifier calls = (found %d, noMatches %d), want (1, 0)", notifier.found, notifier.noMatches)
	}
	if len(notifier.lastAds) != 1 {
		t.Errorf("notifier got %d ads", len(notifier.lastAds))
	}

	infos, err := fileStore.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(infos) != 1 || infos[0].Count != 1 {
		t.Errorf("stored batches = %+v, want one batch of one ad", infos)
	}
}

func TestSearchService_RunNoMatches(t *testing.T) {
	service, fileStore, notifier := testService(t, `<p>empty page</p>`)

	results, err := service.Run(context.Background(), testProfile(), search.ModeQuick)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}

	if notifier.found != 0 || notifier.noMatches != 1 {
		t.Errorf("notifier calls = (found %d, noMatches %d), want (0, 1)", notifier.found, notifier.noMatches)
	}

	// Empty runs are still recorded; the history shows the bike has not
	// surfaced yet.
	infos, err := fileStore.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(infos) != 1 || infos[0].Count != 0 {
		t.Errorf("stored batches = %+v, want one empty batch", infos)
	}
}

func TestSearchService_RunInvalidProfile(t *testing.T) {
	service, _, notifier := testService(t, matchPage)

	profile := testProfile()
	profile.Locations = nil

	if _, err := service.Run(context.Background(), profile, search.ModeQuick); err == nil {
		t.Error("expected error for invalid profile")
	}
	if notifier.found != 0 && notifier.noMatches != 0 {
		t.Error("failed run must not notify")
	}
}

// Package notify emits operator-facing summaries of search runs. It is
// presentation only: a failed notification never affects stored results.
package notify

import (
	"fmt"
	"io"

	"github.com/mkrol/bike-hunter/internal/search"
)

// Notifier is the narrow side-channel the search service calls at most
// once per run.
type Notifier interface {
	MatchesFound(ads []search.Ad)
	NoMatches()
}

const topMatches = 3

// ConsoleNotifier prints a human-readable match summary to a writer,
// normally stdout.
type ConsoleNotifier struct {
	w io.Writer
}

func NewConsole(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) MatchesFound(ads []search.Ad) {
	fmt.Fprintf(n.w, "\nALERT: found %d potential matches\n", len(ads))
	fmt.Fprintln(n.w, "============================================================")
	shown := len(ads)
	if shown > topMatches {
		shown = topMatches
	}
	for i, ad := range ads[:shown] {
		fmt.Fprintf(n.w, "%d. %s\n", i+1, ad.Title)
		fmt.Fprintf(n.w, "   price:    %s\n", ad.Price)
		fmt.Fprintf(n.w, "   location: %s\n", ad.LocationDate)
		fmt.Fprintf(n.w, "   url:      %s\n", ad.URL)
		fmt.Fprintf(n.w, "   score:    %d\n", ad.RelevanceScore)
		fmt.Fprintln(n.w, "--------------------------------------------------")
	}
	fmt.Fprintf(n.w, "total matches: %d - check the URLs above\n", len(ads))
	fmt.Fprintln(n.w, "============================================================")
}

func (n *ConsoleNotifier) NoMatches() {
	fmt.Fprintln(n.w, "no suspicious ads found - the bike has not appeared yet")
}

package search_test

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mkrol/bike-hunter/internal/search"
)

func augustRules(t *testing.T) search.DateRules {
	t.Helper()
	theft, err := time.Parse("2006-01-02", "2025-08-13")
	if err != nil {
		t.Fatalf("parse theft date: %v", err)
	}
	return search.NewDateRules(theft)
}

func TestNewDateRules(t *testing.T) {
	rules := augustRules(t)

	if rules.TheftDay != 13 {
		t.Errorf("TheftDay = %d, want 13", rules.TheftDay)
	}
	wantExact := []string{"13 sie", "14 sie", "15 sie"}
	if len(rules.ExactTokens) != len(wantExact) {
		t.Fatalf("ExactTokens = %v, want %v", rules.ExactTokens, wantExact)
	}
	for i := range wantExact {
		if rules.ExactTokens[i] != wantExact[i] {
			t.Errorf("ExactTokens[%d] = %q, want %q", i, rules.ExactTokens[i], wantExact[i])
		}
	}

	hasMonth := func(tok string) bool {
		for _, m := range rules.MonthTokens {
			if m == tok {
				return true
			}
		}
		return false
	}
	for _, tok := range []string{"sierpnia", "sierp", "sie", "aug"} {
		if !hasMonth(tok) {
			t.Errorf("MonthTokens missing %q: %v", tok, rules.MonthTokens)
		}
	}
}

func TestTemporalFilter_MatchText(t *testing.T) {
	filter := search.NewTemporalFilter(augustRules(t))

	cases := []struct {
		name string
		text string
		want bool
	}{
		{"recency today pl", "Warszawa, Mokotów - dziś o 14:30", true},
		{"recency marker wins regardless of content", "Radom - dziś, 5 lipca", true},
		{"recency yesterday pl", "Piaseczno - Wczoraj o 09:12", true},
		{"recency english", "Warszawa - today", true},
		{"exact theft day token", "Warszawa - 13 sie", true},
		{"exact day plus two", "Otwock - 15 sie", true},
		{"month and day on theft day", "Warszawa - 13 sierpnia 2025", true},
		{"month and later day", "Legionowo - 27 sierpnia", true},
		{"month and day before theft", "Warszawa - 12 sierpnia", false},
		{"other month", "Warszawa - 5 lipca", false},
		{"month without parseable day", "sierpnia", false},
		{"no date at all", "Warszawa, Ursynów", false},
		{"empty", "", false},
		{"sentinel", search.NoLocation, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := filter.MatchText(tc.text); got != tc.want {
				t.Errorf("MatchText(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func containerFromHTML(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	sel := doc.Find("div[data-cy='l-card']")
	if sel.Length() == 0 {
		t.Fatal("fixture has no ad container")
	}
	return sel.First()
}

func TestTemporalFilter_PostedAfterTheft_LabeledElement(t *testing.T) {
	filter := search.NewTemporalFilter(augustRules(t))

	sel := containerFromHTML(t, `
<div data-cy="l-card">
  <h6>Rockrider EXPL 500</h6>
  <p data-testid="location-date">Warszawa - Dziś o 12:00</p>
</div>`)

	if !filter.PostedAfterTheft(sel) {
		t.Error("labeled location-date with recency marker should pass")
	}
}

func TestTemporalFilter_PostedAfterTheft_FallbackText(t *testing.T) {
	filter := search.NewTemporalFilter(augustRules(t))

	// No labeled element; the date only appears as loose text.
	sel := containerFromHTML(t, `
<div data-cy="l-card">
  <h6>Rockrider EXPL 500</h6>
  <span>Piaseczno - 14 sierpnia</span>
</div>`)

	if !filter.PostedAfterTheft(sel) {
		t.Error("fallback text scan should find the post-theft date")
	}
}

func TestTemporalFilter_PostedAfterTheft_Undetermined(t *testing.T) {
	filter := search.NewTemporalFilter(augustRules(t))

	sel := containerFromHTML(t, `
<div data-cy="l-card">
  <h6>Rockrider EXPL 500</h6>
  <span>Super okazja</span>
</div>`)

	if filter.PostedAfterTheft(sel) {
		t.Error("container without any date text must be treated as pre-theft")
	}
}

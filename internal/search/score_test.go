package search_test

import (
	"testing"

	"github.com/mkrol/bike-hunter/internal/search"
)

func TestScorer_KnownTitles(t *testing.T) {
	scorer := search.NewScorer(search.DefaultProfile())

	cases := []struct {
		title string
		want  int
	}{
		{"Rockrider EXPL 500 czarny", 8}, // brand+line+suffix+color
		{"Rockrider EXPL 500", 7},
		{"Rockrider EXPL", 5},
		{"Rockrider", 3},
		{"rower górski mtb", 1}, // type synonyms count once
		{"Trek bike", 0},
		{"Rockrider EXPL 500 czarny mtb decathlon", 10},
		{"", 0},
	}

	for _, tc := range cases {
		if got := scorer.Score(tc.title); got != tc.want {
			t.Errorf("Score(%q) = %d, want %d", tc.title, got, tc.want)
		}
	}
}

func TestScorer_CaseInsensitive(t *testing.T) {
	scorer := search.NewScorer(search.DefaultProfile())
	if a, b := scorer.Score("ROCKRIDER EXPL 500"), scorer.Score("rockrider expl 500"); a != b {
		t.Errorf("case variants scored differently: %d vs %d", a, b)
	}
}

func TestScorer_Deterministic(t *testing.T) {
	scorer := search.NewScorer(search.DefaultProfile())
	title := "Rockrider EXPL 500 czarny"
	first := scorer.Score(title)
	for i := 0; i < 10; i++ {
		if got := scorer.Score(title); got != first {
			t.Fatalf("Score is not deterministic: %d then %d", first, got)
		}
	}
}

func TestScorer_BoundedByMaxScore(t *testing.T) {
	scorer := search.NewScorer(search.DefaultProfile())
	if max := scorer.MaxScore(); max != 10 {
		t.Errorf("MaxScore() = %d, want 10", max)
	}

	everything := "Rockrider EXPL 500 czarny black mtb mountain górski decathlon"
	if got := scorer.Score(everything); got > scorer.MaxScore() {
		t.Errorf("Score(%q) = %d exceeds MaxScore %d", everything, got, scorer.MaxScore())
	}
}

func TestScorer_MonotonicWithMoreCategories(t *testing.T) {
	scorer := search.NewScorer(search.DefaultProfile())

	// Each title adds one more matching category to the previous one.
	ladder := []string{
		"rower",
		"Rockrider rower",
		"Rockrider EXPL rower",
		"Rockrider EXPL 500 rower",
		"Rockrider EXPL 500 czarny rower",
	}
	prev := -1
	for _, title := range ladder {
		got := scorer.Score(title)
		if got < prev {
			t.Errorf("Score(%q) = %d dropped below previous %d", title, got, prev)
		}
		prev = got
	}
}

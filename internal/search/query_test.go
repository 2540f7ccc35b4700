package search_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mkrol/bike-hunter/internal/search"
)

func TestBuildSearchURL_FullQuery(t *testing.T) {
	got, err := search.BuildSearchURL("https://www.olx.pl", "Rockrider EXPL 500", "warszawa", 400, 2500, 2)
	if err != nil {
		t.Fatalf("BuildSearchURL returned unexpected error: %v", err)
	}

	want := "https://www.olx.pl/sport-hobby/rowery/warszawa/q-Rockrider-EXPL-500/?" +
		"search%5Border%5D=created_at:desc" +
		"&search%5Bfilter_float_price:from%5D=400" +
		"&search%5Bfilter_float_price:to%5D=2500" +
		"&page=2"
	if got != want {
		t.Errorf("BuildSearchURL = %q, want %q", got, want)
	}
}

func TestBuildSearchURL_Deterministic(t *testing.T) {
	first, err := search.BuildSearchURL("", "Rockrider", "piaseczno", 0, 2500, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := search.BuildSearchURL("", "Rockrider", "piaseczno", 0, 2500, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("two calls differ: %q vs %q", first, second)
	}
}

func TestBuildSearchURL_NoMinPrice(t *testing.T) {
	got, err := search.BuildSearchURL("", "Rockrider", "warszawa", 0, 2500, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "filter_float_price:from") {
		t.Errorf("min price absent but lower-bound parameter present: %q", got)
	}
	if !strings.Contains(got, "search%5Bfilter_float_price:to%5D=2500") {
		t.Errorf("max price configured but upper-bound parameter missing: %q", got)
	}
}

func TestBuildSearchURL_FirstPageHasNoPageParam(t *testing.T) {
	got, err := search.BuildSearchURL("", "Rockrider", "warszawa", 400, 2500, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "page=") {
		t.Errorf("page=1 should omit the page parameter: %q", got)
	}
}

func TestBuildSearchURL_SortAlwaysPresent(t *testing.T) {
	got, err := search.BuildSearchURL("", "Rockrider", "warszawa", 0, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "search%5Border%5D=created_at:desc") {
		t.Errorf("sort-by-newest parameter missing: %q", got)
	}
}

func TestBuildSearchURL_InvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		term     string
		location string
	}{
		{"empty term", "", "warszawa"},
		{"blank term", "   ", "warszawa"},
		{"empty location", "Rockrider", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := search.BuildSearchURL("", tc.term, tc.location, 0, 0, 1)
			if !errors.Is(err, search.ErrInvalidQuery) {
				t.Errorf("expected ErrInvalidQuery, got %v", err)
			}
		})
	}
}

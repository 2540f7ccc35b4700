package search

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultBaseURL is the marketplace queried by default.
const DefaultBaseURL = "https://www.olx.pl"

// categoryPath is the marketplace category every query is scoped to.
const categoryPath = "sport-hobby/rowery"

// ErrInvalidQuery reports malformed query-builder input. The affected
// (term, location) combination is skipped; the run continues.
var ErrInvalidQuery = errors.New("invalid query input")

// BuildSearchURL constructs a search results URL: category and location
// path, a dash-joined slug of the term, then sort-by-newest plus the
// optional price bounds and page number. Pure; fails only on empty term
// or location.
//
// The filter parameters carry pre-encoded bracket syntax the marketplace
// expects verbatim, so the query string is assembled by hand rather than
// through url.Values.
func BuildSearchURL(base, term, location string, minPrice, maxPrice, page int) (string, error) {
	term = strings.TrimSpace(term)
	location = strings.TrimSpace(location)
	if term == "" {
		return "", fmt.Errorf("empty search term: %w", ErrInvalidQuery)
	}
	if location == "" {
		return "", fmt.Errorf("empty location: %w", ErrInvalidQuery)
	}
	if base == "" {
		base = DefaultBaseURL
	}

	slug := strings.ReplaceAll(term, " ", "-")
	target := fmt.Sprintf("%s/%s/%s/q-%s/", strings.TrimSuffix(base, "/"), categoryPath, location, slug)

	params := []string{"search%5Border%5D=created_at:desc"}
	if minPrice > 0 {
		params = append(params, fmt.Sprintf("search%%5Bfilter_float_price:from%%5D=%d", minPrice))
	}
	if maxPrice > 0 {
		params = append(params, fmt.Sprintf("search%%5Bfilter_float_price:to%%5D=%d", maxPrice))
	}
	if page > 1 {
		params = append(params, fmt.Sprintf("page=%d", page))
	}

	return target + "?" + strings.Join(params, "&"), nil
}

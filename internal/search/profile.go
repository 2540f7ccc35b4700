package search

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Profile describes the stolen bike being hunted. It is read-only for the
// lifetime of a pipeline run.
type Profile struct {
	Brand     string   `json:"brand" yaml:"brand"`
	Model     string   `json:"model" yaml:"model"`
	Color     string   `json:"color" yaml:"color"`
	MinPrice  int      `json:"min_price" yaml:"min_price"`
	MaxPrice  int      `json:"max_price" yaml:"max_price"`
	TheftDate string   `json:"theft_date" yaml:"theft_date"` // YYYY-MM-DD
	Locations []string `json:"locations" yaml:"locations"`
}

const theftDateLayout = "2006-01-02"

// DefaultProfile returns the built-in profile the service was written for.
func DefaultProfile() Profile {
	return Profile{
		Brand:     "Rockrider",
		Model:     "EXPL 500",
		Color:     "black",
		MinPrice:  400,
		MaxPrice:  2500,
		TheftDate: "2025-08-13",
		Locations: []string{"warszawa", "piaseczno", "pruszkow", "legionowo", "otwock"},
	}
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Brand) == "" {
		return errors.New("profile: brand is required")
	}
	if len(p.Locations) == 0 {
		return errors.New("profile: at least one location is required")
	}
	if p.MinPrice < 0 || p.MaxPrice < 0 {
		return errors.New("profile: prices must be non-negative")
	}
	if p.MinPrice > 0 && p.MaxPrice > 0 && p.MinPrice > p.MaxPrice {
		return fmt.Errorf("profile: min_price %d exceeds max_price %d", p.MinPrice, p.MaxPrice)
	}
	if _, err := p.TheftTime(); err != nil {
		return err
	}
	return nil
}

// TheftTime parses the configured theft date.
func (p Profile) TheftTime() (time.Time, error) {
	t, err := time.Parse(theftDateLayout, p.TheftDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("profile: bad theft_date %q: %w", p.TheftDate, err)
	}
	return t, nil
}

// Terms derives the ordered search terms, broadest last: full brand+model,
// brand plus the model line, then the brand alone. Broader terms surface
// more false positives, which the scorer and temporal filter down-rank.
func (p Profile) Terms() []string {
	brand := strings.TrimSpace(p.Brand)
	model := strings.TrimSpace(p.Model)

	var candidates []string
	if model != "" {
		candidates = append(candidates, brand+" "+model)
	}
	if line := p.ModelLine(); line != "" {
		candidates = append(candidates, brand+" "+line)
	}
	candidates = append(candidates, brand)

	seen := make(map[string]struct{}, len(candidates))
	var terms []string
	for _, c := range candidates {
		key := strings.ToLower(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		terms = append(terms, c)
	}
	return terms
}

// ModelLine is the leading word of the model ("EXPL" for "EXPL 500").
func (p Profile) ModelLine() string {
	fields := strings.Fields(p.Model)
	if len(fields) < 2 {
		return ""
	}
	return fields[0]
}

// ModelSuffix is the first purely numeric token of the model ("500").
func (p Profile) ModelSuffix() string {
	for _, f := range strings.Fields(p.Model) {
		if f == "" {
			continue
		}
		numeric := true
		for _, r := range f {
			if r < '0' || r > '9' {
				numeric = false
				break
			}
		}
		if numeric {
			return f
		}
	}
	return ""
}

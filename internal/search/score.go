package search

import "strings"

// colorVariants maps a configured (English) color to its Polish variants.
// The configured color itself always counts as well.
var colorVariants = map[string][]string{
	"black":  {"czarny", "czarna"},
	"white":  {"biały", "biała"},
	"red":    {"czerwony", "czerwona"},
	"blue":   {"niebieski", "niebieska"},
	"green":  {"zielony", "zielona"},
	"grey":   {"szary", "szara"},
	"gray":   {"szary", "szara"},
	"yellow": {"żółty", "żółta"},
	"orange": {"pomarańczowy"},
	"silver": {"srebrny", "srebrna"},
}

// typeSynonyms are bike-type tokens worth a point in any listing title.
var typeSynonyms = []string{"mtb", "mountain", "górski"}

// parentBrands maps a bike brand to the retailer brand sellers often list
// it under instead.
var parentBrands = map[string]string{
	"rockrider": "decathlon",
	"btwin":     "decathlon",
	"b'twin":    "decathlon",
	"elops":     "decathlon",
	"riverside": "decathlon",
	"triban":    "decathlon",
}

// keywordBonus awards points when any of its tokens appears in a title.
// Each bonus is counted at most once.
type keywordBonus struct {
	name   string
	tokens []string
	points int
}

// Scorer assigns a relevance score to listing titles by summing
// independent keyword-presence bonuses derived from the profile.
type Scorer struct {
	bonuses []keywordBonus
}

func NewScorer(p Profile) *Scorer {
	var bonuses []keywordBonus

	brand := strings.ToLower(strings.TrimSpace(p.Brand))
	if brand != "" {
		bonuses = append(bonuses, keywordBonus{"brand", []string{brand}, 3})
	}
	if line := strings.ToLower(p.ModelLine()); line != "" {
		bonuses = append(bonuses, keywordBonus{"model-line", []string{line}, 2})
	}
	if suffix := p.ModelSuffix(); suffix != "" {
		bonuses = append(bonuses, keywordBonus{"model-suffix", []string{suffix}, 2})
	}

	if color := strings.ToLower(strings.TrimSpace(p.Color)); color != "" {
		tokens := append([]string{color}, colorVariants[color]...)
		bonuses = append(bonuses, keywordBonus{"color", tokens, 1})
	}

	bonuses = append(bonuses, keywordBonus{"bike-type", typeSynonyms, 1})

	if parent := parentBrands[brand]; parent != "" {
		bonuses = append(bonuses, keywordBonus{"parent-brand", []string{parent}, 1})
	}

	return &Scorer{bonuses: bonuses}
}

// Score is pure and deterministic: case-insensitive substring containment
// per bonus group, bounded above by MaxScore.
func (s *Scorer) Score(title string) int {
	lower := strings.ToLower(title)
	score := 0
	for _, b := range s.bonuses {
		for _, token := range b.tokens {
			if strings.Contains(lower, token) {
				score += b.points
				break
			}
		}
	}
	return score
}

// MaxScore is the sum of all bonus weights for this profile.
func (s *Scorer) MaxScore() int {
	total := 0
	for _, b := range s.bonuses {
		total += b.points
	}
	return total
}

package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultRecencyMarkers are the literal tokens the marketplace uses for
// listings too fresh to carry a date.
var DefaultRecencyMarkers = []string{"dziś", "today", "wczoraj", "yesterday"}

// polishMonthTokens maps each month to the tokens it may appear as in
// listing text: the genitive form, common abbreviations and the English
// abbreviation. The first entry is the short form used in the
// marketplace's "<day> <abbr>" date format.
var polishMonthTokens = map[time.Month][]string{
	time.January:   {"sty", "stycznia", "jan"},
	time.February:  {"lut", "lutego", "feb"},
	time.March:     {"mar", "marca"},
	time.April:     {"kwi", "kwietnia", "apr"},
	time.May:       {"maj", "maja", "may"},
	time.June:      {"cze", "czerwca", "jun"},
	time.July:      {"lip", "lipca", "jul"},
	time.August:    {"sie", "sierpnia", "sierp", "aug"},
	time.September: {"wrz", "września", "sep"},
	time.October:   {"paź", "października", "oct"},
	time.November:  {"lis", "listopada", "nov"},
	time.December:  {"gru", "grudnia", "dec"},
}

// DateRules parameterize the temporal filter for one theft date, so the
// locale tokens live in configuration rather than in the decision logic.
type DateRules struct {
	// RecencyMarkers always mean "posted after the theft".
	RecencyMarkers []string
	// ExactTokens are the "<day> <month-abbr>" strings for the theft day
	// and the two days after it.
	ExactTokens []string
	// MonthTokens are the theft month's name variants.
	MonthTokens []string
	// TheftDay is the theft's day of month; a parsed day at or past it,
	// combined with a month token, counts as after the theft.
	TheftDay int
}

// NewDateRules derives rules for a theft date using the Polish month
// token table.
func NewDateRules(theft time.Time) DateRules {
	tokens := polishMonthTokens[theft.Month()]
	short := tokens[0]

	exact := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		exact = append(exact, fmt.Sprintf("%d %s", theft.Day()+i, short))
	}

	return DateRules{
		RecencyMarkers: DefaultRecencyMarkers,
		ExactTokens:    exact,
		MonthTokens:    tokens,
		TheftDay:       theft.Day(),
	}
}

// TemporalFilter classifies whether an ad container's location/date text
// places the listing on or after the theft date.
type TemporalFilter struct {
	rules  DateRules
	dayRe  *regexp.Regexp
	hintRe *regexp.Regexp
}

func NewTemporalFilter(rules DateRules) *TemporalFilter {
	// The fallback text scan only picks up nodes that look like a date
	// line: a recency marker, or a day number next to a month token.
	// A bare digit hint would grab model numbers in titles instead.
	var alts []string
	for _, m := range rules.RecencyMarkers {
		alts = append(alts, regexp.QuoteMeta(m))
	}
	if len(rules.MonthTokens) > 0 {
		months := make([]string, 0, len(rules.MonthTokens))
		for _, m := range rules.MonthTokens {
			months = append(months, regexp.QuoteMeta(m))
		}
		alts = append(alts, `\d+\s+(?:`+strings.Join(months, "|")+`)`)
	}
	if len(alts) == 0 {
		alts = []string{`\d`}
	}
	hint := `(?i)` + strings.Join(alts, "|")

	return &TemporalFilter{
		rules:  rules,
		dayRe:  regexp.MustCompile(`\d+`),
		hintRe: regexp.MustCompile(hint),
	}
}

// PostedAfterTheft re-inspects the raw ad container, since it needs the
// original location/date markup rather than the extracted record. First
// match wins: a recency marker, an exact post-theft date token, or the
// theft month alongside a day number at or past the theft day.
// Undetermined dates are conservatively treated as pre-theft.
func (f *TemporalFilter) PostedAfterTheft(sel *goquery.Selection) bool {
	return f.MatchText(locationDateText(sel, f.hintRe))
}

// MatchText applies the decision policy to bare location/date text.
func (f *TemporalFilter) MatchText(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return false
	}

	for _, marker := range f.rules.RecencyMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}

	for _, token := range f.rules.ExactTokens {
		if strings.Contains(text, token) {
			return true
		}
	}

	for _, token := range f.rules.MonthTokens {
		if !strings.Contains(text, token) {
			continue
		}
		if m := f.dayRe.FindString(text); m != "" {
			if day, err := strconv.Atoi(m); err == nil && day >= f.rules.TheftDay {
				return true
			}
		}
		break
	}

	return false
}

// locationDateText pulls the location/date line from a container: the
// labeled element when present, otherwise the first text node that looks
// like it carries a date.
func locationDateText(sel *goquery.Selection, hintRe *regexp.Regexp) string {
	if text := strings.TrimSpace(sel.Find("p[data-testid='location-date']").First().Text()); text != "" {
		return text
	}
	return matchingText(hintRe)(sel)
}

package search

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// maxFallbackContainers caps the broad structural fallback when the
// primary ad-card selector finds nothing.
const maxFallbackContainers = 40

var (
	// ErrMissingTitle and ErrMissingLink invalidate a whole ad record;
	// a listing without either is useless for review.
	ErrMissingTitle = errors.New("ad container has no title")
	ErrMissingLink  = errors.New("ad container has no link")

	priceRe = regexp.MustCompile(`\d[\d\s.,]*zł`)
	digitRe = regexp.MustCompile(`\d`)
)

// fieldStrategy is one attempt at pulling a field out of an ad container.
// Strategies are tried in order until one yields non-empty text, keeping
// the fallback policy declarative and testable per field.
type fieldStrategy struct {
	name string
	text func(*goquery.Selection) string
}

// Extractor turns ad containers from a fetched results page into Ads,
// tolerating markup drift through ordered per-field fallbacks.
type Extractor struct {
	base *url.URL

	titleStrategies    []fieldStrategy
	priceStrategies    []fieldStrategy
	locationStrategies []fieldStrategy
}

func NewExtractor(baseURL string) (*Extractor, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("extractor: bad base url %q: %w", baseURL, err)
	}

	return &Extractor{
		base: base,
		titleStrategies: []fieldStrategy{
			{"h6", selectorText("h6")},
			{"h4", selectorText("h4")},
			{"title-link", selectorText("a[class*='title']")},
		},
		priceStrategies: []fieldStrategy{
			{"labeled-price", selectorText("p[data-testid='ad-price']")},
			{"currency-text", matchingText(priceRe)},
		},
		locationStrategies: []fieldStrategy{
			{"labeled-location", selectorText("p[data-testid='location-date']")},
			{"digit-text", matchingText(digitRe)},
		},
	}, nil
}

// Containers finds the ad cards on a results page: the marketplace's card
// marker first, then a broad class-prefix match capped at
// maxFallbackContainers when the marker is gone.
func (e *Extractor) Containers(doc *goquery.Document) *goquery.Selection {
	cards := doc.Find("div[data-cy='l-card']")
	if cards.Length() > 0 {
		return cards
	}
	fallback := doc.Find("div[class^='css-']")
	if fallback.Length() > maxFallbackContainers {
		fallback = fallback.Slice(0, maxFallbackContainers)
	}
	return fallback
}

// Extract parses a single ad container. Missing price or location/date
// yield sentinels; a missing title or link fails the whole record.
func (e *Extractor) Extract(sel *goquery.Selection) (*Ad, error) {
	title := firstText(sel, e.titleStrategies)
	if title == "" {
		return nil, ErrMissingTitle
	}

	href, ok := sel.Find("a[href]").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return nil, ErrMissingLink
	}
	adURL, err := e.resolve(href)
	if err != nil {
		return nil, fmt.Errorf("ad link %q: %w", href, err)
	}

	price := firstText(sel, e.priceStrategies)
	if price == "" {
		price = NoPrice
	}
	locationDate := firstText(sel, e.locationStrategies)
	if locationDate == "" {
		locationDate = NoLocation
	}

	return &Ad{
		Title:        title,
		URL:          adURL,
		Price:        price,
		LocationDate: locationDate,
	}, nil
}

func (e *Extractor) resolve(href string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	return e.base.ResolveReference(u).String(), nil
}

func firstText(sel *goquery.Selection, strategies []fieldStrategy) string {
	for _, s := range strategies {
		if text := strings.TrimSpace(s.text(sel)); text != "" {
			return text
		}
	}
	return ""
}

func selectorText(query string) func(*goquery.Selection) string {
	return func(sel *goquery.Selection) string {
		return sel.Find(query).First().Text()
	}
}

// matchingText scans the container's text nodes for the first one whose
// trimmed content matches re.
func matchingText(re *regexp.Regexp) func(*goquery.Selection) string {
	return func(sel *goquery.Selection) string {
		var found string
		for _, n := range sel.Nodes {
			walkText(n, func(text string) bool {
				t := strings.TrimSpace(text)
				if t != "" && re.MatchString(t) {
					found = t
					return false
				}
				return true
			})
			if found != "" {
				break
			}
		}
		return found
	}
}

// walkText visits text nodes depth-first until visit returns false.
func walkText(n *html.Node, visit func(string) bool) bool {
	if n.Type == html.TextNode {
		return visit(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walkText(c, visit) {
			return false
		}
	}
	return true
}

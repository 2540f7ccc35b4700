package search

import "fmt"

// Mode bounds the search matrix. It never changes extraction or scoring.
type Mode string

const (
	// ModeQuick limits the run to the first 3 locations, first 3 terms and
	// a single page per combination.
	ModeQuick Mode = "quick"
	// ModeFull walks every configured location with all derived terms,
	// 3 pages each.
	ModeFull Mode = "full"
)

const (
	quickLocationCap = 3
	quickTermCap     = 3
	quickPages       = 1
	fullPages        = 3
)

// ParseMode accepts "quick" and "full"; the empty string defaults to quick.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeQuick, nil
	case ModeQuick, ModeFull:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown search mode %q", s)
	}
}

// Bounds resolves the (locations, terms, pages) iteration space for a
// profile under this mode.
func (m Mode) Bounds(p Profile) (locations, terms []string, pages int) {
	locations = p.Locations
	terms = p.Terms()
	pages = fullPages

	if m == ModeQuick {
		if len(locations) > quickLocationCap {
			locations = locations[:quickLocationCap]
		}
		if len(terms) > quickTermCap {
			terms = terms[:quickTermCap]
		}
		pages = quickPages
	}
	return locations, terms, pages
}

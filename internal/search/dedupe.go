package search

// Dedupe collapses ads sharing a URL, keeping the first occurrence and
// preserving order. Multiple search terms inevitably surface the same ad.
func Dedupe(ads []Ad) []Ad {
	seen := make(map[string]struct{}, len(ads))
	unique := make([]Ad, 0, len(ads))
	for _, ad := range ads {
		if _, ok := seen[ad.URL]; ok {
			continue
		}
		seen[ad.URL] = struct{}{}
		unique = append(unique, ad)
	}
	return unique
}

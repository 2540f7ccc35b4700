package search

// Sentinel values used when a field cannot be extracted from an ad
// container. Distinct from omission: an Ad always carries both fields.
const (
	NoPrice    = "No price"
	NoLocation = "No location"
)

// HighRelevanceThreshold marks the score at which an ad is considered a
// strong candidate in batch summaries.
const HighRelevanceThreshold = 5

// Ad is one parsed marketplace listing. Title and URL are mandatory;
// extraction fails for the container if either is missing. Price and
// LocationDate fall back to sentinels.
type Ad struct {
	Title            string `json:"title"`
	URL              string `json:"url"`
	Price            string `json:"price"`
	LocationDate     string `json:"location_date"`
	RelevanceScore   int    `json:"relevance_score"`
	PostedAfterTheft bool   `json:"posted_after_theft"`
}

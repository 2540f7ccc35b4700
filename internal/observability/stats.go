package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	SearchesRun       uint64            `json:"searches_run"`
	PagesFetched      uint64            `json:"pages_fetched"`
	AdsExtracted      uint64            `json:"ads_extracted"`
	AdsMatched        uint64            `json:"ads_matched"`
	ErrorsTotal       uint64            `json:"errors_total"`
	ErrorsByType      map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	searchesRun  uint64
	pagesFetched uint64
	adsExtracted uint64
	adsMatched   uint64
	errorsTotal  uint64

	statsMu           sync.Mutex
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncSearchesRun() {
	atomic.AddUint64(&searchesRun, 1)
}

func IncPagesFetched() {
	atomic.AddUint64(&pagesFetched, 1)
}

func IncAdsExtracted() {
	atomic.AddUint64(&adsExtracted, 1)
}

func IncAdsMatched() {
	atomic.AddUint64(&adsMatched, 1)
}

func IncError(errType, component string) {
	if errType == "" {
		errType = ErrorUnknown
	}
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	errorsTypeCopy := copyMap(errorsByType)
	errorsComponentCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	return StatsSnapshot{
		SearchesRun:       atomic.LoadUint64(&searchesRun),
		PagesFetched:      atomic.LoadUint64(&pagesFetched),
		AdsExtracted:      atomic.LoadUint64(&adsExtracted),
		AdsMatched:        atomic.LoadUint64(&adsMatched),
		ErrorsTotal:       atomic.LoadUint64(&errorsTotal),
		ErrorsByType:      errorsTypeCopy,
		ErrorsByComponent: errorsComponentCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

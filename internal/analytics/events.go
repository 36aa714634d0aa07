// Package analytics tracks query behaviour: which filter dimensions users
// actually reach through free text, which queries return nothing, and how the
// two input languages are used. Events flow through Kafka from the search
// service to the aggregator.
package analytics

import "time"

type EventType string

const (
	EventQuery      EventType = "query"
	EventCacheHit   EventType = "cache_hit"
	EventCacheMiss  EventType = "cache_miss"
	EventZeroResult EventType = "zero_result"
)

// Language classifies the script mix of a raw query.
type Language string

const (
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
	LangMixed   Language = "mixed"
	LangNone    Language = "none"
)

// QueryEvent describes one executed listing query. Dimensions lists the
// filter dimensions the parser extracted, so the aggregator can report which
// parts of the grammar carry real traffic.
type QueryEvent struct {
	Type       EventType `json:"type"`
	Query      string    `json:"query"`
	Language   Language  `json:"language"`
	Dimensions []string  `json:"dimensions"`
	TotalHits  int       `json:"total_hits"`
	Returned   int       `json:"returned"`
	LatencyMs  int64     `json:"latency_ms"`
	CacheHit   bool      `json:"cache_hit"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id"`
}

// DetectLanguage classifies a raw query by the scripts it contains.
func DetectLanguage(raw string) Language {
	var latin, arabic bool
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			latin = true
		case r >= 0x0600 && r <= 0x06FF:
			arabic = true
		}
	}
	switch {
	case latin && arabic:
		return LangMixed
	case arabic:
		return LangArabic
	case latin:
		return LangEnglish
	default:
		return LangNone
	}
}

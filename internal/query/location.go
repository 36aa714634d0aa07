package query

import (
	"strings"
	"time"

	"github.com/tradeops/tradesearch/internal/query/lexicon"
)

// extractOrigins consumes "from <places>" and its bilingual variants. The
// clause runs from the origin keyword to the next destination keyword (or end
// of buffer) and may list several places joined by conjunctions. Place names
// are stored in the canonical data language, Arabic.
func extractOrigins(buf string, q *ParsedQuery, now time.Time) string {
	s, e := findFirstListed(buf, lexicon.OriginKeywords)
	if s < 0 {
		return buf
	}
	clauseEnd := len(buf)
	if ds, _ := findEarliestKeyword(buf[e:], lexicon.DestinationKeywords); ds >= 0 {
		clauseEnd = e + ds
	}
	var origins []string
	for _, part := range splitConjunction(buf[e:clauseEnd]) {
		if t := trimTerm(part); t != "" {
			origins = append(origins, lexicon.TranslatePlace(t))
		}
	}
	if len(origins) == 0 {
		return buf
	}
	q.Origins = origins
	return cut(buf, s, clauseEnd)
}

// extractDestinations consumes "to <place>" and its variants. Each listed
// destination is truncated to its first word, so a trailing free-text tail
// after the place name is not swallowed into the filter.
func extractDestinations(buf string, q *ParsedQuery, now time.Time) string {
	s, e := findFirstListed(buf, lexicon.DestinationKeywords)
	if s < 0 {
		return buf
	}
	clauseEnd := len(buf)
	if os, _ := findEarliestKeyword(buf[e:], lexicon.OriginKeywords); os >= 0 {
		clauseEnd = e + os
	}
	var dests []string
	for _, part := range splitConjunction(buf[e:clauseEnd]) {
		t := trimTerm(part)
		if t == "" {
			continue
		}
		word := strings.Fields(t)[0]
		dests = append(dests, lexicon.TranslatePlace(word))
	}
	if len(dests) == 0 {
		return buf
	}
	q.Destinations = dests
	return cut(buf, s, clauseEnd)
}

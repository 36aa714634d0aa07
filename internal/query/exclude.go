package query

import (
	"time"

	"github.com/tradeops/tradesearch/internal/query/lexicon"
)

// extractExclusions consumes the exclusion clause: everything after the first
// exclusion keyword, split on conjunctions and translated as product terms.
// At most one exclusion clause exists per query; the keyword and its trailing
// clause are removed together so excluded terms can never resurface as
// products.
func extractExclusions(buf string, q *ParsedQuery, now time.Time) string {
	s, e := findFirstListed(buf, lexicon.ExclusionKeywords)
	if s < 0 {
		return buf
	}
	var excluded []string
	for _, part := range splitConjunction(buf[e:]) {
		if t := trimTerm(part); t != "" {
			excluded = append(excluded, lexicon.TranslateTerm(t))
		}
	}
	if len(excluded) == 0 {
		return buf
	}
	q.ExcludedProducts = excluded
	return cut(buf, s, len(buf))
}

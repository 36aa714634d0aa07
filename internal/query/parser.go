package query

import (
	"strings"
	"time"

	"github.com/tradeops/tradesearch/internal/query/lexicon"
)

// stageFn inspects the remaining text, removes any span it claims, and
// records extracted fields on q. Stages run in a fixed order over a
// shrinking buffer so that later stages never reinterpret text already
// claimed by earlier ones.
type stageFn func(buf string, q *ParsedQuery, now time.Time) string

// stages is the extraction pipeline. The order is load-bearing: dates run
// before numeric constraints so a year is never read as a threshold, the
// exclusion clause is consumed before residue classification, and locations
// come after numerics so "أقل من" is never mistaken for an origin keyword.
var stages = []stageFn{
	extractRelativeDates,
	extractMonthRange,
	extractMonthYear,
	extractSort,
	extractExclusions,
	extractNumeric,
	extractOrigins,
	extractDestinations,
	stripMetaWords,
	classifyResidue,
}

// Parse decomposes a free-text query into a ParsedQuery, anchoring relative
// dates to the current time.
func Parse(raw string) *ParsedQuery {
	return ParseAt(raw, time.Now())
}

// ParseAt is Parse with an injectable clock.
func ParseAt(raw string, now time.Time) *ParsedQuery {
	q := &ParsedQuery{}
	buf := squeeze(raw)
	for _, stage := range stages {
		if buf == "" {
			break
		}
		buf = stage(buf, q, now)
	}
	return q
}

// stripMetaWords drops tokens that are generic nouns or filler in either
// language.
func stripMetaWords(buf string, q *ParsedQuery, now time.Time) string {
	words := strings.Fields(buf)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !lexicon.IsMetaWord(w) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// classifyResidue turns whatever survived extraction into the general or
// product search terms. Each candidate is run through the asymmetric two-way
// product translation so a term typed in either language matches data stored
// in the other.
func classifyResidue(buf string, q *ParsedQuery, now time.Time) string {
	var terms []string
	for _, part := range splitConjunction(buf) {
		if t := trimTerm(part); t != "" {
			terms = append(terms, lexicon.TranslateTerm(t))
		}
	}
	switch len(terms) {
	case 0:
	case 1:
		q.GeneralTerm = terms[0]
	default:
		q.Products = terms
	}
	return ""
}

// splitConjunction divides a clause into items: on the Arabic conjunction
// character when it appears anywhere in the clause, otherwise on the
// whitespace-bounded English conjunction phrases. Splitting is one level
// deep only.
func splitConjunction(clause string) []string {
	if strings.Contains(clause, lexicon.ArabicConjunction) {
		return strings.Split(clause, lexicon.ArabicConjunction)
	}
	return englishConjunctionRe.Split(clause, -1)
}

func trimTerm(s string) string {
	return strings.Trim(strings.TrimSpace(s), "?!.,;:؟،\"'")
}

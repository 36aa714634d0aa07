package query

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tradeops/tradesearch/internal/query/lexicon"
)

// numericWindow bounds, in bytes, how far from a metric keyword an operator
// phrase may sit and still bind to it.
const numericWindow = 80

var numberRe = regexp.MustCompile(`^[\s:]*([0-9][0-9,]*(?:\.[0-9]+)?)`)

// extractNumeric finds per-metric comparison constraints such as "value less
// than 50000" or "أكثر من 10 حاويات". Metrics are checked in the fixed table
// order and each metric claims at most one constraint. A metric keyword with
// no resolvable operator and number nearby is left in the buffer untouched.
func extractNumeric(buf string, q *ParsedQuery, now time.Time) string {
	for _, entry := range lexicon.NumericColumns {
		ks, ke := findEarliestKeyword(buf, entry.Keywords)
		if ks < 0 {
			continue
		}
		ws := runeStartBack(buf, max(0, ks-numericWindow))
		we := runeStartFwd(buf, min(len(buf), ke+numericWindow))

		op, os, oe := findOperator(buf[ws:we])
		if op == "" {
			continue
		}
		os += ws
		oe += ws
		m := numberRe.FindStringSubmatchIndex(buf[oe:])
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(strings.ReplaceAll(buf[oe+m[2]:oe+m[3]], ",", ""), 64)
		if err != nil {
			continue
		}
		setConstraint(q, entry.Column, &NumericConstraint{Operator: Operator(op), Value: value})

		// Remove the operator+number span and the keyword span, merged
		// when they touch, later span first so offsets stay valid.
		numEnd := oe + m[1]
		if os <= ke && ks <= numEnd {
			buf = cut(buf, min(ks, os), max(ke, numEnd))
		} else if os > ks {
			buf = cut(buf, os, numEnd)
			buf = cut(buf, ks, ke)
		} else {
			buf = cut(buf, ks, ke)
			buf = cut(buf, os, numEnd)
		}
	}
	return buf
}

// findOperator locates the first operator phrase in s, checking word phrases
// (boundary-matched) before raw symbols (plain substring).
func findOperator(s string) (string, int, int) {
	for _, op := range lexicon.OperatorPhrases {
		if isSymbolPhrase(op.Phrase) {
			if idx := strings.Index(s, op.Phrase); idx >= 0 {
				return op.Operator, idx, idx + len(op.Phrase)
			}
			continue
		}
		if ps, pe := findKeyword(s, op.Phrase); ps >= 0 {
			return op.Operator, ps, pe
		}
	}
	return "", -1, -1
}

func isSymbolPhrase(p string) bool {
	return p == "<" || p == ">" || p == "=" || p == "<=" || p == ">="
}

func setConstraint(q *ParsedQuery, column string, c *NumericConstraint) {
	switch column {
	case lexicon.ColTotalValue:
		q.TotalValue = c
	case lexicon.ColContainers:
		q.Containers = c
	case lexicon.ColWeight:
		q.Weight = c
	case lexicon.ColBalance:
		q.Balance = c
	}
}

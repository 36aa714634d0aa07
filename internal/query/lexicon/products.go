package lexicon

import (
	"sort"
	"strings"
)

// productPairs is the fixed trade-goods lexicon. English spellings on the
// left, canonical Arabic on the right. Several English spellings may map to
// the same Arabic term.
var productPairs = []struct {
	EN string
	AR string
}{
	{"basmati rice", "أرز بسمتي"},
	{"olive oil", "زيت زيتون"},
	{"palm oil", "زيت نخيل"},
	{"crude oil", "نفط خام"},
	{"white sugar", "سكر أبيض"},
	{"rice", "أرز"},
	{"basmati", "بسمتي"},
	{"pepper", "فلفل"},
	{"spices", "بهارات"},
	{"spice", "بهارات"},
	{"sugar", "سكر"},
	{"wheat", "قمح"},
	{"flour", "طحين"},
	{"barley", "شعير"},
	{"corn", "ذرة"},
	{"maize", "ذرة"},
	{"lentils", "عدس"},
	{"chickpeas", "حمص"},
	{"tea", "شاي"},
	{"coffee", "قهوة"},
	{"cardamom", "هيل"},
	{"saffron", "زعفران"},
	{"sesame", "سمسم"},
	{"dates", "تمر"},
	{"cement", "إسمنت"},
	{"steel", "حديد"},
	{"iron", "حديد"},
	{"timber", "خشب"},
	{"cotton", "قطن"},
	{"salt", "ملح"},
}

// Ordered longest-entry-first so multi-word entries are preferred over
// single-word ones when matching inside a phrase.
var (
	productsByENLen []int
	productsByARLen []int
	productEN       map[string]string
	productAR       map[string]string
)

func init() {
	productEN = make(map[string]string, len(productPairs))
	productAR = make(map[string]string, len(productPairs))
	for i, p := range productPairs {
		productsByENLen = append(productsByENLen, i)
		productsByARLen = append(productsByARLen, i)
		if _, ok := productEN[p.EN]; !ok {
			productEN[p.EN] = p.AR
		}
		if _, ok := productAR[p.AR]; !ok {
			productAR[p.AR] = p.EN
		}
	}
	sort.SliceStable(productsByENLen, func(a, b int) bool {
		return len(productPairs[productsByENLen[a]].EN) > len(productPairs[productsByENLen[b]].EN)
	})
	sort.SliceStable(productsByARLen, func(a, b int) bool {
		return len(productPairs[productsByARLen[a]].AR) > len(productPairs[productsByARLen[b]].AR)
	})
}

// TranslateProduct translates an English product term to its canonical
// Arabic form. Exact (case-insensitive) matches win; otherwise the longest
// table entry found inside the term is replaced in place. A miss returns the
// term unchanged.
func TranslateProduct(term string) string {
	t := strings.ToLower(strings.TrimSpace(term))
	if ar, ok := productEN[t]; ok {
		return ar
	}
	for _, i := range productsByENLen {
		en := productPairs[i].EN
		if idx := indexWordFold(t, en); idx >= 0 {
			return strings.TrimSpace(t[:idx] + productPairs[i].AR + t[idx+len(en):])
		}
	}
	return strings.TrimSpace(term)
}

// TranslateProductReverse translates a canonical Arabic product term back to
// English. A miss returns the term unchanged.
func TranslateProductReverse(term string) string {
	t := strings.TrimSpace(term)
	if en, ok := productAR[t]; ok {
		return en
	}
	for _, i := range productsByARLen {
		ar := productPairs[i].AR
		if idx := strings.Index(t, ar); idx >= 0 {
			return strings.TrimSpace(t[:idx] + productPairs[i].EN + t[idx+len(ar):])
		}
	}
	return t
}

// TranslateTerm runs the asymmetric two-way translation used for residue and
// exclusion terms: the forward (English to Arabic) table is tried first, and
// the reverse table only when the forward pass changed nothing.
func TranslateTerm(term string) string {
	if out := TranslateProduct(term); !strings.EqualFold(out, strings.TrimSpace(term)) {
		return out
	}
	return TranslateProductReverse(term)
}

// indexWordFold finds needle inside haystack (both already lower-cased for
// Latin text) on word boundaries, returning the byte index or -1.
func indexWordFold(haystack, needle string) int {
	start := 0
	for {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return -1
		}
		idx += start
		if isWordBoundary(haystack, idx, idx+len(needle)) {
			return idx
		}
		start = idx + 1
	}
}

func isWordBoundary(s string, start, end int) bool {
	boundaryOK := func(b byte) bool {
		return !(b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9')
	}
	if start > 0 && !boundaryOK(s[start-1]) {
		return false
	}
	if end < len(s) && !boundaryOK(s[end]) {
		return false
	}
	return true
}

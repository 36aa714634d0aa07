package lexicon

import "strings"

// metaWords are generic nouns and filler that carry no filter information.
// They are dropped token-by-token before residue classification.
var metaWords = map[string]struct{}{
	"shipment": {}, "shipments": {}, "product": {}, "products": {},
	"cargo": {}, "goods": {}, "order": {}, "orders": {}, "contract": {},
	"contracts": {}, "show": {}, "list": {}, "find": {}, "search": {},
	"me": {}, "all": {}, "the": {}, "a": {}, "an": {}, "for": {}, "of": {},
	"in": {}, "with": {},
	"شحنة": {}, "شحنات": {}, "الشحنات": {}, "بضائع": {}, "البضائع": {},
	"منتجات": {}, "المنتجات": {}, "طلبات": {}, "الطلبات": {}, "عقود": {},
	"اعرض": {}, "أرني": {}, "ارني": {}, "كل": {}, "جميع": {}, "في": {},
	"عن": {}, "لي": {},
}

// IsMetaWord reports whether a token is a generic stopword in either
// language. Matching is case-insensitive for Latin tokens.
func IsMetaWord(token string) bool {
	_, ok := metaWords[strings.ToLower(token)]
	return ok
}

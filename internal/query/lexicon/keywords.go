package lexicon

// ExclusionKeywords introduce the (single) exclusion clause. Checked in list
// order; longer keywords come before their single-word suffixes so "ما عدا"
// is never claimed as "عدا".
var ExclusionKeywords = []string{
	"ما عدا", "باستثناء", "بدون", "عدا",
	"except for", "excluding", "except", "without", "but not",
}

// OriginKeywords introduce the origin clause. Checked in list order.
var OriginKeywords = []string{
	"shipped from", "coming from", "origin", "from", "من",
}

// DestinationKeywords introduce the destination clause. Checked in list order.
var DestinationKeywords = []string{
	"going to", "destination", "to", "إلى", "الى",
}

// ArabicConjunction is the single-character Arabic conjunction. When it
// appears anywhere in a clause the clause is split on it; this intentionally
// mirrors the original grammar even though the character also occurs inside
// some Arabic words.
const ArabicConjunction = "و"

// EnglishConjunctions split a clause into multiple items when matched with
// whitespace on both sides. Longer phrases come first.
var EnglishConjunctions = []string{"as well as", "and", "also", "plus"}

// Comparison operators recognised near a metric keyword.
type OperatorPhrase struct {
	Phrase   string
	Operator string
}

// OperatorPhrases is checked in list order; word phrases in both languages
// come before the raw symbols, and two-character symbols before their
// one-character prefixes.
var OperatorPhrases = []OperatorPhrase{
	{"less than", "<"},
	{"أقل من", "<"},
	{"اقل من", "<"},
	{"more than", ">"},
	{"greater than", ">"},
	{"أكثر من", ">"},
	{"اكثر من", ">"},
	{"at least", ">="},
	{"على الأقل", ">="},
	{"على الاقل", ">="},
	{"at most", "<="},
	{"على الأكثر", "<="},
	{"على الاكثر", "<="},
	{"exactly", "="},
	{"يساوي", "="},
	{"<=", "<="},
	{">=", ">="},
	{"<", "<"},
	{">", ">"},
	{"=", "="},
}

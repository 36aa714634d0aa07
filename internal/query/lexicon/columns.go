package lexicon

// Sort column identifiers handed to the listing backend.
const (
	ColPricePerTon = "price_per_ton"
	ColTotalValue  = "total_value"
	ColWeight      = "weight"
	ColContainers  = "containers"
	ColBalance     = "balance"
	ColETA         = "eta"
)

// ColumnKeywords associates a column with its bilingual keyword synonyms.
// Within an entry, longer keywords come first so multi-word synonyms win
// over their single-word prefixes.
type ColumnKeywords struct {
	Column   string
	Keywords []string
}

// SortColumns is the metric table for superlative/sort detection. It covers
// one more metric (ETA) than the numeric-constraint table because "earliest
// arrival" is a sort request while arrival dates are never numeric filters.
var SortColumns = []ColumnKeywords{
	{ColPricePerTon, []string{"price per ton", "سعر الطن", "price", "سعر", "السعر"}},
	{ColTotalValue, []string{"total value", "القيمة الإجمالية", "القيمة الاجمالية", "value", "قيمة", "القيمة"}},
	{ColWeight, []string{"weight", "الوزن", "وزن"}},
	{ColContainers, []string{"container count", "containers", "حاويات", "الحاويات", "عدد الحاويات"}},
	{ColBalance, []string{"outstanding balance", "balance", "رصيد", "الرصيد", "الرصيد المتبقي"}},
	{ColETA, []string{"arrival", "eta", "الوصول", "وصول"}},
}

// NumericColumns is the metric table for numeric-constraint extraction,
// checked in this fixed order: value, containers, weight, balance.
var NumericColumns = []ColumnKeywords{
	{ColTotalValue, []string{"total value", "القيمة الإجمالية", "القيمة الاجمالية", "value", "price", "cost", "قيمة", "القيمة", "سعر", "السعر", "تكلفة"}},
	{ColContainers, []string{"containers", "container", "حاويات", "الحاويات", "حاوية"}},
	{ColWeight, []string{"weight", "tons", "ton", "الوزن", "وزن", "طن", "أطنان", "اطنان"}},
	{ColBalance, []string{"outstanding balance", "balance", "outstanding", "الرصيد المتبقي", "رصيد", "الرصيد", "متبقي"}},
}

// Superlative modifier vocabularies, scanned in the fixed order:
// Arabic-minimum, Arabic-maximum, English-minimum, English-maximum.
var (
	ArabicMinWords  = []string{"أقل", "اقل", "أدنى", "ادنى", "أرخص", "ارخص"}
	ArabicMaxWords  = []string{"أعلى", "اعلى", "أكبر", "اكبر", "أغلى", "اغلى"}
	EnglishMinWords = []string{"lowest", "cheapest", "smallest", "minimum", "least", "earliest"}
	EnglishMaxWords = []string{"highest", "biggest", "largest", "maximum", "most", "latest"}
)

// QuestionPrefixes may precede a superlative modifier and are discarded with
// the matched phrase. Longer prefixes come first.
var QuestionPrefixes = []string{
	"what is the", "what is", "which is the", "which is", "show the", "show",
	"ما هي", "ما هو", "كم", "ما",
}

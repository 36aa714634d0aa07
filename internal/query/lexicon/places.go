package lexicon

import (
	"sort"
	"strings"
)

// placePairs translates display-language (English) location names to their
// canonical Arabic form. The table is one-directional: canonical names are
// what the listing database stores.
var placePairs = []struct {
	EN string
	AR string
}{
	{"saudi arabia", "السعودية"},
	{"united arab emirates", "الإمارات"},
	{"emirates", "الإمارات"},
	{"uae", "الإمارات"},
	{"egypt", "مصر"},
	{"iraq", "العراق"},
	{"jordan", "الأردن"},
	{"kuwait", "الكويت"},
	{"qatar", "قطر"},
	{"bahrain", "البحرين"},
	{"oman", "عمان"},
	{"lebanon", "لبنان"},
	{"syria", "سوريا"},
	{"yemen", "اليمن"},
	{"sudan", "السودان"},
	{"morocco", "المغرب"},
	{"tunisia", "تونس"},
	{"algeria", "الجزائر"},
	{"libya", "ليبيا"},
	{"turkey", "تركيا"},
	{"india", "الهند"},
	{"china", "الصين"},
	{"pakistan", "باكستان"},
	{"brazil", "البرازيل"},
	{"thailand", "تايلاند"},
	{"vietnam", "فيتنام"},
	{"indonesia", "إندونيسيا"},
	{"malaysia", "ماليزيا"},
	{"russia", "روسيا"},
	{"ukraine", "أوكرانيا"},
}

var placesByLen []int

func init() {
	for i := range placePairs {
		placesByLen = append(placesByLen, i)
	}
	sort.SliceStable(placesByLen, func(a, b int) bool {
		return len(placePairs[placesByLen[a]].EN) > len(placePairs[placesByLen[b]].EN)
	})
}

// TranslatePlace maps an English location name to its canonical Arabic form.
// Lookup is exact and case-insensitive, longest entry first; an unresolved
// name passes through unchanged.
func TranslatePlace(name string) string {
	t := strings.ToLower(strings.TrimSpace(name))
	for _, i := range placesByLen {
		if placePairs[i].EN == t {
			return placePairs[i].AR
		}
	}
	return strings.TrimSpace(name)
}

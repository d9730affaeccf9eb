package content

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// mediumTranslations maps Dutch material terms to English. Longer
// terms must be applied before their substrings, see TranslateMedium.
var mediumTranslations = map[string]string{
	"olieverf":       "oil paint",
	"oilieverf":      "oil paint",
	"acrylverf":      "acrylic",
	"acryl":          "acrylic",
	"bladgoud":       "gold leaf",
	"spuitlak":       "spray paint",
	"pigment":        "pigment",
	"pigment poeder": "pigment powder",
	"poeder":         "powder",
	"epoxy":          "epoxy",
	"structuur":      "texture paste",
	"hout":           "wood",
	"textiel":        "textile",
	"mica plaatjes":  "mica flakes",
	"op paneel":      "on panel",
	"op doek":        "on canvas",
	" en ":           " and ",
}

// Dutch titles lowercase articles and prepositions unless they open
// the title.
var dutchLowercaseWords = map[string]struct{}{
	"is": {}, "in": {}, "de": {}, "het": {}, "van": {}, "voor": {},
	"op": {}, "uit": {}, "en": {}, "een": {}, "naar": {}, "tot": {},
	"die": {}, "dat": {},
}

// FixDutchTitle corrects naive word-by-word title casing for Dutch:
// only the first word and proper words keep their capital.
func FixDutchTitle(title string) string {
	words := strings.Fields(title)
	for i, word := range words {
		if i == 0 {
			words[i] = capitalizeFirst(strings.ToLower(word))
			continue
		}
		if _, ok := dutchLowercaseWords[strings.ToLower(word)]; ok {
			words[i] = strings.ToLower(word)
		} else {
			words[i] = capitalizeFirst(strings.ToLower(word))
		}
	}
	return strings.Join(words, " ")
}

// DutchMedium extracts the Dutch half of a possibly bilingual medium
// field. The shop mixes "Olieverf op paneel/ Oil paint on panel"
// style fields with plain Dutch ones, and one known English-only
// variant.
func DutchMedium(raw string) string {
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "Oil paint") {
		nl := raw
		for _, pair := range [][2]string{
			{"Oil paint", "Olieverf"},
			{"gold leaf", "bladgoud"},
			{"on panel", "op paneel"},
			{"on canvas", "op doek"},
		} {
			nl = strings.ReplaceAll(nl, pair[0], pair[1])
		}
		return strings.TrimSpace(nl)
	}

	nl := raw
	if before, _, found := strings.Cut(raw, "/"); found {
		nl = before
	}
	nl = strings.TrimSpace(nl)
	nl = strings.ReplaceAll(nl, "Oilieverf", "Olieverf")

	return capitalizeFirst(nl)
}

// TranslateMedium translates a Dutch medium description to English
// using the term table, longest terms first so multi-word terms win
// over their substrings.
func TranslateMedium(mediumNL string) string {
	if mediumNL == "" {
		return ""
	}

	terms := make([]string, 0, len(mediumTranslations))
	for nl := range mediumTranslations {
		terms = append(terms, nl)
	}
	sort.Slice(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })

	result := strings.ToLower(mediumNL)
	for _, nl := range terms {
		en := mediumTranslations[nl]
		if len(nl) <= 6 {
			// Word boundaries keep short terms from matching inside
			// longer words.
			pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(nl) + `\b`)
			result = pattern.ReplaceAllString(result, en)
		} else {
			result = strings.ReplaceAll(result, nl, en)
		}
	}

	return capitalizeFirst(result)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

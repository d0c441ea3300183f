package coverage

import (
	"regexp"
	"strings"
)

// typographyFolder rewrites smart quotes and non-breaking spaces before label
// comparison; contract text pasted from word processors is full of both.
var typographyFolder = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
	" ", " ",
	"–", "-", "—", "-",
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeLabel lowercases, folds typography, and collapses whitespace so
// label matching is insensitive to case and formatting noise.
func NormalizeLabel(s string) string {
	s = typographyFolder.Replace(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespaceRe.ReplaceAllString(s, " ")
}

// labelSynonyms folds alias spellings onto a canonical label.
var labelSynonyms = map[string]string{
	"nda":             "confidentiality",
	"non-disclosure":  "confidentiality",
	"choice of law":   "governing law",
	"applicable law":  "governing law",
	"venue":           "jurisdiction",
	"forum":           "jurisdiction",
	"gdpr":            "data protection",
	"personal data":   "data protection",
	"ip":              "intellectual property",
	"indemnification": "indemnity",
	"hold harmless":   "indemnity",
	"act of god":      "force majeure",
	"fees":            "payment",
	"licence":         "license",
}

// labelVariants returns every spelling that should count as a hit for a
// selector label: the normalized label itself, its canonical form, and all
// aliases that share that canonical form.
func labelVariants(label string) []string {
	norm := NormalizeLabel(label)
	canonical := norm
	if c, ok := labelSynonyms[norm]; ok {
		canonical = c
	}
	variants := []string{canonical}
	if norm != canonical {
		variants = append(variants, norm)
	}
	for alias, c := range labelSynonyms {
		if c == canonical && alias != norm {
			variants = append(variants, alias)
		}
	}
	return variants
}

// Entity extraction patterns per selector key.
var (
	amountRe       = regexp.MustCompile(`(?i)(?:[$€£]\s?\d[\d,]*(?:\.\d+)?|\b\d[\d,]*(?:\.\d+)?\s?(?:usd|eur|gbp|dollars|euros|pounds)\b)`)
	durationRe     = regexp.MustCompile(`(?i)\b\d+\s+(?:day|week|month|year)s?\b`)
	lawRe          = regexp.MustCompile(`(?i)\b(?:laws? of|governed by|governing law|applicable law)\b`)
	jurisdictionRe = regexp.MustCompile(`(?i)\b(?:jurisdiction|courts? of|venue|forum)\b`)
)

var entityPatterns = map[string]*regexp.Regexp{
	"amounts":      amountRe,
	"durations":    durationRe,
	"law":          lawRe,
	"jurisdiction": jurisdictionRe,
}

// countEntities counts occurrences of one entity kind in segment text.
func countEntities(selector, text string) int {
	re, ok := entityPatterns[selector]
	if !ok {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}

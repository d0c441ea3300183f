package segment

import "strings"

// typeKeywords maps clause types to the keywords that identify them. The
// slice order is the match order: the first type whose keywords hit wins, so
// more specific types sit above generic ones (survival before termination,
// governing_law before jurisdiction).
var typeKeywords = []struct {
	clauseType string
	keywords   []string
}{
	{"governing_law", []string{"governing law", "governed by the law", "governed by", "choice of law", "applicable law"}},
	{"jurisdiction", []string{"exclusive jurisdiction", "jurisdiction", "venue", "courts of", "forum"}},
	{"force_majeure", []string{"force majeure", "act of god", "beyond the reasonable control"}},
	{"data_protection", []string{"data protection", "personal data", "gdpr", "data subject"}},
	{"confidentiality", []string{"confidentiality", "confidential information", "confidential", "non-disclosure"}},
	{"survival", []string{"survival", "shall survive", "survive termination", "survive expiry"}},
	{"termination", []string{"termination", "terminate"}},
	{"liability", []string{"limitation of liability", "liability"}},
	{"indemnity", []string{"indemnification", "indemnify", "indemnity", "hold harmless"}},
	{"ip", []string{"intellectual property", "ip ownership", "work product", "proprietary rights"}},
	{"license", []string{"license", "licence", "right to use"}},
	{"warranty", []string{"warranties", "warranty", "warrants", "as is"}},
	{"payment", []string{"payment", "fees", "invoice", "compensation", "charges"}},
	{"assignment", []string{"assignment", "assign"}},
	{"notice", []string{"notices", "notice"}},
}

// fallbackType labels blocks the keyword sniff cannot place.
const fallbackType = "paragraph"

// sniffType assigns a clause type by best-effort keyword match. The title is
// checked first across all types, then the body, so a headed clause is typed
// by its heading even when the body mentions other topics.
func sniffType(title, body string) string {
	title = strings.ToLower(title)
	body = strings.ToLower(body)

	for _, entry := range typeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(title, kw) {
				return entry.clauseType
			}
		}
	}
	for _, entry := range typeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(body, kw) {
				return entry.clauseType
			}
		}
	}
	return fallbackType
}

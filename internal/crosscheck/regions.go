package crosscheck

import "strings"

// regionNames are the law/forum regions the mismatch heuristic can recognize,
// keyed by canonical name. Spellings are matched case-insensitively.
var regionNames = []struct {
	canonical string
	spellings []string
}{
	{"england", []string{"england and wales", "england"}},
	{"scotland", []string{"scotland", "scots law"}},
	{"northern ireland", []string{"northern ireland"}},
	{"ireland", []string{"republic of ireland", "ireland"}},
	{"new york", []string{"new york"}},
	{"delaware", []string{"delaware"}},
	{"california", []string{"california"}},
	{"texas", []string{"texas"}},
	{"france", []string{"france", "french law"}},
	{"germany", []string{"germany", "german law"}},
	{"netherlands", []string{"netherlands", "dutch law"}},
	{"switzerland", []string{"switzerland", "swiss law"}},
	{"singapore", []string{"singapore"}},
	{"hong kong", []string{"hong kong"}},
	{"india", []string{"india"}},
	{"australia", []string{"new south wales", "australia"}},
	{"japan", []string{"japan"}},
	{"ontario", []string{"ontario"}},
}

// firstRegion returns the canonical region whose spelling occurs earliest in
// text, so a sentence naming several regions resolves to the one it leads
// with.
func firstRegion(text string) string {
	lower := strings.ToLower(text)
	best := ""
	bestIdx := len(lower) + 1
	for _, region := range regionNames {
		for _, spelling := range region.spellings {
			if idx := strings.Index(lower, spelling); idx >= 0 && idx < bestIdx {
				bestIdx = idx
				best = region.canonical
			}
		}
	}
	return best
}

// regionAfter scans for a region in the text following the first occurrence
// of any of the given phrases; if no phrase occurs, the whole text is
// scanned.
func regionAfter(text string, phrases ...string) string {
	lower := strings.ToLower(text)
	for _, phrase := range phrases {
		if idx := strings.Index(lower, phrase); idx >= 0 {
			return firstRegion(text[idx+len(phrase):])
		}
	}
	return firstRegion(text)
}

// lawRegion extracts the governing-law region from clause text.
func lawRegion(text string) string {
	return regionAfter(text, "laws of", "law of", "governed by")
}

// forumRegion extracts the forum region from clause text.
func forumRegion(text string) string {
	return regionAfter(text, "courts of", "courts in", "courts located in", "jurisdiction of")
}

package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// The built-in checkers are pure domain logic - no I/O, no side effects.
// Each receives the clause plus context and returns zero or more findings
// with clause-relative spans; the executor owns coordinate conversion.

// indexFold reports the byte offset of the first case-insensitive occurrence
// of needle in haystack. Folding is ASCII-only and byte-preserving, so the
// offset stays valid in the original haystack even around Unicode case pairs
// whose fold changes byte length (e.g. "İ").
func indexFold(haystack, needle string) int {
	return strings.Index(lowerASCII(haystack), lowerASCII(needle))
}

func lowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i := range b {
		if 'A' <= b[i] && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

func containsFold(s, sub string) bool {
	return indexFold(s, sub) >= 0
}

func containsAnyFold(s string, subs ...string) (string, bool) {
	for _, sub := range subs {
		if containsFold(s, sub) {
			return sub, true
		}
	}
	return "", false
}

// jurisdictionHints maps caller jurisdiction codes to region spellings a
// governing-law clause for that jurisdiction would be expected to name.
var jurisdictionHints = map[string][]string{
	"gb": {"england", "wales", "scotland", "northern ireland", "united kingdom"},
	"uk": {"england", "wales", "scotland", "northern ireland", "united kingdom"},
	"us": {"new york", "delaware", "california", "texas", "united states"},
	"de": {"germany", "german law"},
	"fr": {"france", "french law"},
	"ie": {"ireland", "irish law"},
	"sg": {"singapore"},
	"au": {"australia", "new south wales", "victoria"},
	"in": {"india"},
}

func checkGoverningLaw(in Input) []Finding {
	text := in.Clause.Text
	var out []Finding

	if _, ok := containsAnyFold(text, "laws of", "law of"); !ok {
		out = append(out, relFinding("GOVERNING_LAW_UNCLEAR",
			"governing-law clause does not name a body of law",
			SeverityMinor, text, ""))
	}
	if !containsFold(text, "conflict of law") && !containsFold(text, "conflicts of law") {
		out = append(out, relFinding("GOVERNING_LAW_NO_CONFLICTS_WAIVER",
			"no conflict-of-laws exclusion",
			SeverityInfo, text, ""))
	}
	if hints, ok := jurisdictionHints[strings.ToLower(in.Jurisdiction)]; ok {
		if _, found := containsAnyFold(text, hints...); !found {
			out = append(out, relFinding("GOVERNING_LAW_FOREIGN",
				fmt.Sprintf("governing law does not match expected jurisdiction %q", in.Jurisdiction),
				SeverityMinor, text, ""))
		}
	}
	return out
}

func checkJurisdiction(in Input) []Finding {
	text := in.Clause.Text
	var out []Finding

	switch {
	case containsFold(text, "non-exclusive") || containsFold(text, "nonexclusive"):
		out = append(out, relFinding("JURISDICTION_NON_EXCLUSIVE",
			"forum is non-exclusive; parallel proceedings remain possible",
			SeverityInfo, text, "non-exclusive"))
	case !containsFold(text, "exclusive"):
		out = append(out, relFinding("JURISDICTION_NOT_EXCLUSIVE",
			"no exclusivity qualifier on the chosen forum",
			SeverityMinor, text, ""))
	}
	if !containsFold(text, "court") && !containsFold(text, "arbitration") {
		out = append(out, relFinding("JURISDICTION_NO_FORUM",
			"no court or arbitral forum named",
			SeverityMinor, text, ""))
	}
	if containsFold(text, "arbitration") {
		if _, ok := containsAnyFold(text, "icc", "lcia", "uncitral", "aaa", "siac"); !ok {
			out = append(out, relFinding("ARBITRATION_NO_RULES",
				"arbitration agreed without naming institutional rules",
				SeverityMinor, text, "arbitration"))
		}
	}
	return out
}

func checkTermination(in Input) []Finding {
	text := in.Clause.Text
	var out []Finding

	convenience := containsFold(text, "for convenience") || containsFold(text, "without cause")
	cause := containsFold(text, "for cause") || containsFold(text, "material breach")

	if convenience && !containsFold(text, "notice") {
		out = append(out, relFinding("TERMINATION_NO_NOTICE",
			"termination for convenience lacks an explicit notice period",
			SeverityMajor, text, "for convenience"))
	}
	if cause && !containsFold(text, "cure") {
		out = append(out, relFinding("TERMINATION_NO_CURE",
			"termination for cause lacks a cure period",
			SeverityMajor, text, "material breach"))
	}
	if !convenience && !cause && !containsFold(text, "expir") {
		out = append(out, relFinding("TERMINATION_GROUNDS_UNCLEAR",
			"termination grounds are not stated",
			SeverityInfo, text, ""))
	}
	return out
}

var survivalSectionRe = regexp.MustCompile(`(?i)\b(section|clause)s?\s+\d+`)

func checkSurvival(in Input) []Finding {
	text := in.Clause.Text
	named := containsFold(text, "confidential") ||
		containsFold(text, "liability") ||
		containsFold(text, "indemn")
	if !survivalSectionRe.MatchString(text) && !named {
		return []Finding{relFinding("SURVIVAL_VAGUE",
			"survival clause names no surviving sections or obligations",
			SeverityMinor, text, "survive")}
	}
	return nil
}

func checkForceMajeure(in Input) []Finding {
	text := in.Clause.Text
	var out []Finding

	if !containsFold(text, "notice") && !containsFold(text, "notify") {
		out = append(out, relFinding("FORCE_MAJEURE_NO_NOTICE",
			"no obligation to notify the other party of a force majeure event",
			SeverityMinor, text, ""))
	}
	if containsFold(text, "without limitation") {
		out = append(out, relFinding("FORCE_MAJEURE_OPEN_ENDED",
			"event list is open-ended",
			SeverityInfo, text, "without limitation"))
	}
	return out
}

func checkAssignment(in Input) []Finding {
	text := in.Clause.Text

	restricted := containsFold(text, "may not assign") ||
		containsFold(text, "shall not assign") ||
		containsFold(text, "without the prior written consent")
	if !restricted {
		return []Finding{relFinding("ASSIGNMENT_UNRESTRICTED",
			"assignment is not conditioned on consent",
			SeverityMinor, text, "assign")}
	}
	if containsFold(text, "consent") && !containsFold(text, "unreasonably withheld") {
		return []Finding{relFinding("ASSIGNMENT_CONSENT_UNQUALIFIED",
			"consent to assignment may be withheld arbitrarily",
			SeverityInfo, text, "consent")}
	}
	return nil
}

func checkNotice(in Input) []Finding {
	text := in.Clause.Text
	var out []Finding

	if _, ok := containsAnyFold(text, "in writing", "email", "e-mail", "courier", "registered mail", "certified mail"); !ok {
		out = append(out, relFinding("NOTICE_NO_METHOD",
			"no delivery method specified for notices",
			SeverityMinor, text, ""))
	}
	if !containsFold(text, "address") {
		out = append(out, relFinding("NOTICE_NO_ADDRESS",
			"no notice address specified",
			SeverityInfo, text, ""))
	}
	return out
}

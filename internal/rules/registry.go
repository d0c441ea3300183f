package rules

import (
	"sort"
	"strings"
)

// Registry is the static table of named rule-checkers. It is populated at
// construction and read-only afterwards, so it may be shared across
// concurrent document analyses without locking.
type Registry struct {
	checkers map[string]Checker
}

// synonyms folds non-canonical clause-type spellings onto canonical rule ids
// before lookup.
var synonyms = map[string]string{
	"choice of law":             "governing_law",
	"choice_of_law":             "governing_law",
	"applicable law":            "governing_law",
	"applicable_law":            "governing_law",
	"venue":                     "jurisdiction",
	"forum":                     "jurisdiction",
	"dispute resolution":        "jurisdiction",
	"dispute_resolution":        "jurisdiction",
	"non-disclosure":            "confidentiality",
	"nda":                       "confidentiality",
	"confidential information":  "confidentiality",
	"limitation of liability":   "liability",
	"limitation_of_liability":   "liability",
	"indemnification":           "indemnity",
	"hold harmless":             "indemnity",
	"intellectual property":     "ip",
	"intellectual_property":     "ip",
	"ip ownership":              "ip",
	"licence":                   "license",
	"fees":                      "payment",
	"compensation":              "payment",
	"act of god":                "force_majeure",
	"force majeure":             "force_majeure",
	"privacy":                   "data_protection",
	"personal data":             "data_protection",
	"gdpr":                      "data_protection",
	"warranties":                "warranty",
	"representations":           "warranty",
	"notices":                   "notice",
}

// Normalize returns the canonical rule id for a clause-type spelling. Unknown
// spellings come back lowercased with spaces folded to underscores; the
// registry simply has no checker for them.
func Normalize(clauseType string) string {
	key := strings.ToLower(strings.TrimSpace(clauseType))
	if canonical, ok := synonyms[key]; ok {
		return canonical
	}
	return strings.ReplaceAll(key, " ", "_")
}

// NewRegistry builds the registry with the built-in checker set.
func NewRegistry() *Registry {
	r := &Registry{checkers: make(map[string]Checker)}

	r.Register("governing_law", checkGoverningLaw)
	r.Register("jurisdiction", checkJurisdiction)
	r.Register("termination", checkTermination)
	r.Register("confidentiality", checkConfidentiality)
	r.Register("liability", checkLiability)
	r.Register("indemnity", checkIndemnity)
	r.Register("payment", checkPayment)
	r.Register("ip", checkIP)
	r.Register("license", checkLicense)
	r.Register("force_majeure", checkForceMajeure)
	r.Register("survival", checkSurvival)
	r.Register("warranty", checkWarranty)
	r.Register("data_protection", checkDataProtection)
	r.Register("assignment", checkAssignment)
	r.Register("notice", checkNotice)

	return r
}

// Register installs a checker under a canonical rule id. Intended for wiring
// time only; the registry is not safe for registration after analyses start.
func (r *Registry) Register(id string, c Checker) {
	if c == nil {
		return
	}
	r.checkers[Normalize(id)] = c
}

// Resolve returns the checker for a clause type, folding synonyms first.
// A missing checker is not an error; the dispatcher degrades to a fallback.
func (r *Registry) Resolve(clauseType string) (Checker, bool) {
	c, ok := r.checkers[Normalize(clauseType)]
	return c, ok
}

// Known reports whether a rule id resolves to a registered checker. Coverage
// reporting uses it to drop references to retired rules.
func (r *Registry) Known(ruleID string) bool {
	_, ok := r.checkers[Normalize(ruleID)]
	return ok
}

// RuleIDs lists registered rule ids in sorted order.
func (r *Registry) RuleIDs() []string {
	ids := make([]string, 0, len(r.checkers))
	for id := range r.checkers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

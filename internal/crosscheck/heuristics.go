package crosscheck

import (
	"fmt"
	"regexp"
	"strings"

	"clausecheck/internal/dispatch"
	"clausecheck/internal/rules"
)

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// lawForumMismatch compares the governing-law region against the chosen
// forum. A disagreement, or an unparseable forum while a law region is
// present, is flagged on both clauses. The two roles may live in the same
// clause; the finding is then appended once.
func (p *Pass) lawForumMismatch(results []dispatch.ClauseResult, touched map[int]struct{}) {
	lawIdx := firstOfType(results, "governing_law")
	if lawIdx < 0 {
		return
	}
	law := lawRegion(results[lawIdx].Text)
	if law == "" {
		return
	}

	forumIdx := firstOfType(results, "jurisdiction")
	if forumIdx < 0 {
		for i := range results {
			if containsFold(results[i].Text, "jurisdiction") || containsFold(results[i].Text, "courts of") {
				forumIdx = i
				break
			}
		}
	}

	if forumIdx < 0 {
		appendFinding(results, touched, lawIdx, "LAW_FORUM_MISMATCH",
			fmt.Sprintf("governing law is %s but no forum clause was found", law),
			rules.SeverityMajor)
		return
	}

	forum := forumRegion(results[forumIdx].Text)
	if forum == "" {
		msg := fmt.Sprintf("governing law is %s but the forum is unparseable", law)
		appendFinding(results, touched, lawIdx, "LAW_FORUM_MISMATCH", msg, rules.SeverityMajor)
		if forumIdx != lawIdx {
			appendFinding(results, touched, forumIdx, "LAW_FORUM_MISMATCH", msg, rules.SeverityMajor)
		}
		return
	}
	if forum != law {
		msg := fmt.Sprintf("governing law is %s but the courts of %s have jurisdiction", law, forum)
		appendFinding(results, touched, lawIdx, "LAW_FORUM_MISMATCH", msg, rules.SeverityMajor)
		if forumIdx != lawIdx {
			appendFinding(results, touched, forumIdx, "LAW_FORUM_MISMATCH", msg, rules.SeverityMajor)
		}
	}
}

var noticePeriodRe = regexp.MustCompile(`(?i)\b\d+\s+(day|month|week)s?['’]?\s*(prior\s+)?(written\s+)?notice\b`)
var curePeriodRe = regexp.MustCompile(`(?i)\bcure\b|\bremed(y|ied|ies)\b`)

// terminationNotice checks that convenience termination states a notice
// period and cause termination states a cure period, looking in both the
// termination clause and a separate notice clause.
func (p *Pass) terminationNotice(results []dispatch.ClauseResult, touched map[int]struct{}) {
	termIdx := firstOfType(results, "termination")
	if termIdx < 0 {
		return
	}
	text := results[termIdx].Text

	searchText := text
	if noticeIdx := firstOfType(results, "notice"); noticeIdx >= 0 {
		searchText += "\n" + results[noticeIdx].Text
	}

	convenience := containsFold(text, "for convenience") || containsFold(text, "without cause")
	if convenience && !noticePeriodRe.MatchString(searchText) {
		appendFinding(results, touched, termIdx, "TERMINATION_NOTICE_PERIOD_MISSING",
			"termination for convenience has no stated notice period anywhere in the document",
			rules.SeverityMinor)
	}

	cause := containsFold(text, "for cause") || containsFold(text, "material breach")
	if cause && !curePeriodRe.MatchString(text) {
		appendFinding(results, touched, termIdx, "TERMINATION_CURE_PERIOD_MISSING",
			"termination for cause has no cure-period language",
			rules.SeverityMinor)
	}
}

// survivalRequired is the minimal set a survival list must mention.
var survivalRequired = []struct {
	label  string
	needle string
}{
	{"confidentiality", "confidential"},
	{"limitation of liability", "liability"},
	{"indemnity", "indemn"},
}

// survivalCompleteness verifies the survival list covers the minimal set and
// reports all omissions in one combined finding.
func (p *Pass) survivalCompleteness(results []dispatch.ClauseResult, touched map[int]struct{}) {
	idx := firstOfType(results, "survival")
	if idx < 0 {
		return
	}
	text := results[idx].Text

	var missing []string
	for _, req := range survivalRequired {
		if !containsFold(text, req.needle) {
			missing = append(missing, req.label)
		}
	}
	if len(missing) > 0 {
		appendFinding(results, touched, idx, "SURVIVAL_INCOMPLETE",
			"survival list omits: "+strings.Join(missing, ", "),
			rules.SeverityMinor)
	}
}

// personalDataSignals mark a document as handling personal data.
var personalDataSignals = []string{"personal data", "personally identifiable", "data subject", "personal information"}

// confidentialityDataProtection flags a confidentiality clause that ignores
// data-protection law in a document that clearly handles personal data.
func (p *Pass) confidentialityDataProtection(results []dispatch.ClauseResult, touched map[int]struct{}) {
	confIdx := firstOfType(results, "confidentiality")
	if confIdx < 0 {
		return
	}

	signal := false
	for i := range results {
		for _, s := range personalDataSignals {
			if containsFold(results[i].Text, s) {
				signal = true
				break
			}
		}
		if signal {
			break
		}
	}
	if !signal {
		return
	}

	conf := results[confIdx].Text
	if !containsFold(conf, "data protection") && !containsFold(conf, "gdpr") && !containsFold(conf, "privacy") {
		appendFinding(results, touched, confIdx, "CONFIDENTIALITY_IGNORES_DATA_PROTECTION",
			"document handles personal data but the confidentiality clause does not reference data-protection law",
			rules.SeverityMinor)
	}
}

// forceMajeurePayment flags force-majeure text that sweeps in payment
// obligations without an explicit carve-out.
func (p *Pass) forceMajeurePayment(results []dispatch.ClauseResult, touched map[int]struct{}) {
	idx := firstOfType(results, "force_majeure")
	if idx < 0 {
		return
	}
	text := results[idx].Text
	if !containsFold(text, "payment") && !containsFold(text, "pay ") {
		return
	}
	carved := containsFold(text, "does not excuse payment") ||
		containsFold(text, "shall not excuse payment") ||
		containsFold(text, "except payment") ||
		containsFold(text, "other than payment")
	if !carved {
		appendFinding(results, touched, idx, "FORCE_MAJEURE_EXCUSES_PAYMENT",
			"force majeure covers payment obligations without a carve-out",
			rules.SeverityMajor)
	}
}

// retentionPhrases assert strict IP ownership retention.
var retentionPhrases = []string{"retain all", "retains all", "sole and exclusive property", "exclusively own"}

// broadGrantTerms mirror the license checker's breadth vocabulary.
var broadGrantTerms = []string{"perpetual", "irrevocable", "worldwide", "sublicensable", "sublicenseable", "transferable"}

// ipLicenseBreadth flags a license whose breadth contradicts a strict IP
// retention elsewhere in the document. The finding lands on the license
// clause, which is the one to renegotiate.
func (p *Pass) ipLicenseBreadth(results []dispatch.ClauseResult, touched map[int]struct{}) {
	ipIdx := firstOfType(results, "ip")
	licIdx := firstOfType(results, "license")
	if ipIdx < 0 || licIdx < 0 || ipIdx == licIdx {
		return
	}

	strict := false
	for _, phrase := range retentionPhrases {
		if containsFold(results[ipIdx].Text, phrase) {
			strict = true
			break
		}
	}
	if !strict {
		return
	}

	broad := 0
	for _, term := range broadGrantTerms {
		if containsFold(results[licIdx].Text, term) {
			broad++
		}
	}
	if broad >= 2 {
		appendFinding(results, touched, licIdx, "LICENSE_CONFLICTS_WITH_IP_RETENTION",
			"license grant breadth undermines the strict IP ownership retention",
			rules.SeverityMajor)
	}
}

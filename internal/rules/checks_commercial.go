package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	durationRe    = regexp.MustCompile(`(?i)\b\d+\s+(year|month|day)s?\b`)
	paymentDaysRe = regexp.MustCompile(`(?i)\b(?:net\s+)?(\d+)\s+days\b`)
)

func checkConfidentiality(in Input) []Finding {
	text := in.Clause.Text
	var out []Finding

	perpetual := containsFold(text, "in perpetuity") || containsFold(text, "indefinitely")
	if !durationRe.MatchString(text) && !perpetual {
		out = append(out, relFinding("CONFIDENTIALITY_NO_TERM",
			"no confidentiality period stated",
			SeverityMinor, text, ""))
	}
	if _, ok := containsAnyFold(text, "publicly available", "public domain", "independently developed", "already known"); !ok {
		out = append(out, relFinding("CONFIDENTIALITY_NO_CARVE_OUTS",
			"no standard exclusions from confidential information",
			SeverityMinor, text, ""))
	}
	if !containsFold(text, "return") && !containsFold(text, "destroy") {
		out = append(out, relFinding("CONFIDENTIALITY_NO_RETURN",
			"no return-or-destroy obligation on termination",
			SeverityInfo, text, ""))
	}
	return out
}

// dataProtectionRegimes are the statutory regimes a personal-data clause is
// expected to anchor to.
var dataProtectionRegimes = []string{"gdpr", "data protection act", "dpa 2018", "ccpa", "hipaa"}

func checkDataProtection(in Input) []Finding {
	text := in.Clause.Text
	var out []Finding

	if _, ok := containsAnyFold(text, dataProtectionRegimes...); !ok {
		f := relFinding("DATA_PROTECTION_NO_REGIME",
			"personal data is handled without reference to a data-protection regime",
			SeverityMajor, text, "personal data")
		f.Citations = []Citation{{Source: "GDPR", Reference: "Art. 28"}}
		out = append(out, f)
	}
	if !containsFold(text, "processor") && !containsFold(text, "controller") {
		out = append(out, relFinding("DATA_PROTECTION_NO_ROLES",
			"processing roles (controller/processor) are not allocated",
			SeverityMinor, text, ""))
	}
	return out
}

func checkLiability(in Input) []Finding {
	text := in.Clause.Text
	var out []Finding

	if _, ok := containsAnyFold(text, "shall not exceed", "limited to", "aggregate liability", "liability cap"); !ok {
		out = append(out, relFinding("LIABILITY_UNCAPPED",
			"no aggregate cap on liability",
			SeverityMajor, text, "liability"))
	}
	if !containsFold(text, "consequential") && !containsFold(text, "indirect") {
		out = append(out, relFinding("LIABILITY_CONSEQUENTIAL_SILENT",
			"consequential and indirect damages are not addressed",
			SeverityMinor, text, ""))
	}
	juris := strings.ToLower(in.Jurisdiction)
	if (juris == "gb" || juris == "uk") && !containsFold(text, "death") && !containsFold(text, "fraud") {
		out = append(out, relFinding("LIABILITY_NO_STATUTORY_CARVE_OUT",
			"no carve-out for liabilities that cannot be excluded under English law",
			SeverityMinor, text, ""))
	}
	return out
}

func checkIndemnity(in Input) []Finding {
	text := in.Clause.Text
	var out []Finding

	if containsFold(text, "unlimited") {
		out = append(out, relFinding("INDEMNITY_UNLIMITED",
			"indemnity is expressly unlimited",
			SeverityMajor, text, "unlimited"))
	}
	if !containsFold(text, "third party") && !containsFold(text, "third-party") {
		out = append(out, relFinding("INDEMNITY_SCOPE_BROAD",
			"indemnity is not limited to third-party claims",
			SeverityInfo, text, ""))
	}
	if !containsFold(text, "defend") {
		out = append(out, relFinding("INDEMNITY_NO_DEFENSE",
			"no defense obligation alongside the indemnity",
			SeverityInfo, text, ""))
	}
	return out
}

func checkPayment(in Input) []Finding {
	text := in.Clause.Text
	var out []Finding

	match := paymentDaysRe.FindStringSubmatch(text)
	if match == nil {
		out = append(out, relFinding("PAYMENT_NO_TERM",
			"no payment term in days stated",
			SeverityMinor, text, ""))
	} else if maxStr, ok := in.Policy["max_payment_days"]; ok {
		maxDays, err := strconv.Atoi(maxStr)
		days, _ := strconv.Atoi(match[1])
		if err == nil && days > maxDays {
			out = append(out, relFinding("PAYMENT_TERM_EXCEEDS_POLICY",
				fmt.Sprintf("payment term of %d days exceeds policy maximum of %d", days, maxDays),
				SeverityMinor, text, match[0]))
		}
	}
	if !containsFold(text, "interest") && !containsFold(text, "late") {
		out = append(out, relFinding("PAYMENT_NO_LATE_REMEDY",
			"no remedy for late payment",
			SeverityInfo, text, ""))
	}
	return out
}

func checkIP(in Input) []Finding {
	text := in.Clause.Text
	var out []Finding

	retention, hasRetention := containsAnyFold(text,
		"retain all", "retains all", "sole and exclusive property", "exclusively own")
	if !hasRetention && !containsFold(text, "assign") {
		out = append(out, relFinding("IP_OWNERSHIP_UNCLEAR",
			"ownership of work product is not allocated",
			SeverityMinor, text, ""))
	}
	if hasRetention {
		out = append(out, relFinding("IP_STRICT_RETENTION",
			"all intellectual property is retained by one party",
			SeverityInfo, text, retention))
	}
	if containsFold(text, "work made for hire") {
		out = append(out, relFinding("IP_WORK_FOR_HIRE",
			"work-made-for-hire designation present",
			SeverityInfo, text, "work made for hire"))
	}
	return out
}

// broadLicenseTerms are grant qualifiers that together amount to giving the
// licensed rights away.
var broadLicenseTerms = []string{
	"perpetual", "irrevocable", "worldwide", "sublicensable", "sublicenseable",
	"transferable", "royalty-free",
}

func checkLicense(in Input) []Finding {
	text := in.Clause.Text

	var matched []string
	for _, term := range broadLicenseTerms {
		if containsFold(text, term) {
			matched = append(matched, term)
		}
	}

	switch {
	case len(matched) >= 3:
		return []Finding{relFinding("LICENSE_BROAD_GRANT",
			fmt.Sprintf("license grant is effectively unrestricted (%s)", strings.Join(matched, ", ")),
			SeverityMajor, text, matched[0])}
	case len(matched) > 0:
		return []Finding{relFinding("LICENSE_GRANT_TERMS",
			fmt.Sprintf("broad grant terms present: %s", strings.Join(matched, ", ")),
			SeverityInfo, text, matched[0])}
	case !containsFold(text, "limited") && !containsFold(text, "solely"):
		return []Finding{relFinding("LICENSE_SCOPE_UNCLEAR",
			"license scope is not limited or qualified",
			SeverityMinor, text, "")}
	}
	return nil
}

func checkWarranty(in Input) []Finding {
	text := in.Clause.Text
	var out []Finding

	if containsFold(text, "as is") {
		out = append(out, relFinding("WARRANTY_DISCLAIMED",
			"deliverables are provided as-is",
			SeverityInfo, text, "as is"))
	} else if !durationRe.MatchString(text) {
		out = append(out, relFinding("WARRANTY_NO_PERIOD",
			"no warranty period stated",
			SeverityMinor, text, ""))
	}
	return out
}

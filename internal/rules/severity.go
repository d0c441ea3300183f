package rules

import "strings"

// Severity is the canonical 4-level finding scale. Every other spelling a
// checker or external rule pack might emit is coerced onto it.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityMinor
	SeverityMajor
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "minor"
	case SeverityMajor:
		return "major"
	case SeverityCritical:
		return "critical"
	default:
		return "info"
	}
}

// MarshalText serializes the canonical spelling.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText coerces any spelling; it never fails.
func (s *Severity) UnmarshalText(b []byte) error {
	*s = ParseSeverity(string(b))
	return nil
}

// severityAliases maps known spellings onto the canonical scale. The mapping
// preserves ordering: low/med/high/critical and sev3..sev0 line up with
// info/minor/major/critical.
var severityAliases = map[string]Severity{
	"info":          SeverityInfo,
	"informational": SeverityInfo,
	"information":   SeverityInfo,
	"note":          SeverityInfo,
	"notice":        SeverityInfo,
	"hint":          SeverityInfo,
	"debug":         SeverityInfo,
	"trace":         SeverityInfo,
	"low":           SeverityInfo,
	"sev3":          SeverityInfo,
	"s3":            SeverityInfo,

	"minor":    SeverityMinor,
	"medium":   SeverityMinor,
	"med":      SeverityMinor,
	"moderate": SeverityMinor,
	"warn":     SeverityMinor,
	"warning":  SeverityMinor,
	"sev2":     SeverityMinor,
	"s2":       SeverityMinor,

	"major":  SeverityMajor,
	"high":   SeverityMajor,
	"error":  SeverityMajor,
	"err":    SeverityMajor,
	"severe": SeverityMajor,
	"sev1":   SeverityMajor,
	"s1":     SeverityMajor,

	"critical": SeverityCritical,
	"crit":     SeverityCritical,
	"fatal":    SeverityCritical,
	"blocker":  SeverityCritical,
	"sev0":     SeverityCritical,
	"s0":       SeverityCritical,
}

// ParseSeverity coerces an arbitrary severity spelling onto the canonical
// scale. The coercion is total (unknown strings default to info) and
// idempotent (canonical spellings map to themselves).
func ParseSeverity(raw string) Severity {
	if s, ok := severityAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return SeverityInfo
}

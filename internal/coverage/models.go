package coverage

import "clausecheck/internal/segment"

// ZoneStatus orders coverage outcomes: missing < present < rules_candidate <
// rules_fired. Promotion is monotonic; a status only ever moves right.
type ZoneStatus int

const (
	StatusMissing ZoneStatus = iota
	StatusPresent
	StatusRulesCandidate
	StatusRulesFired
)

func (s ZoneStatus) String() string {
	switch s {
	case StatusPresent:
		return "present"
	case StatusRulesCandidate:
		return "rules_candidate"
	case StatusRulesFired:
		return "rules_fired"
	default:
		return "missing"
	}
}

// MarshalText serializes the canonical spelling.
func (s ZoneStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses the canonical spelling; unknown input reads as missing.
func (s *ZoneStatus) UnmarshalText(b []byte) error {
	switch string(b) {
	case "present":
		*s = StatusPresent
	case "rules_candidate":
		*s = StatusRulesCandidate
	case "rules_fired":
		*s = StatusRulesFired
	default:
		*s = StatusMissing
	}
	return nil
}

// Zone is one declarative coverage rule: which labels, entities and rule ids
// constitute "this legal topic was addressed". Loaded once from the zone
// specification and immutable afterwards.
type Zone struct {
	ID              string          `yaml:"zone_id" json:"zone_id"`
	Name            string          `yaml:"zone_name" json:"zone_name"`
	LabelAny        []string        `yaml:"label_any" json:"label_any,omitempty"`
	LabelAll        []string        `yaml:"label_all" json:"label_all,omitempty"`
	LabelNone       []string        `yaml:"label_none" json:"label_none,omitempty"`
	EntitySelectors map[string]bool `yaml:"entity_selectors" json:"entity_selectors,omitempty"`
	RuleIDs         []string        `yaml:"rule_ids" json:"rule_ids,omitempty"`
	Weight          float64         `yaml:"weight" json:"weight,omitempty"`
	Required        bool            `yaml:"required" json:"required"`
}

// Spec is the versioned zone specification file.
type Spec struct {
	Version int    `yaml:"version"`
	Zones   []Zone `yaml:"zones"`
}

// SegmentRef is one evidentiary (segment index, span) pair.
type SegmentRef struct {
	Index int          `json:"index"`
	Span  segment.Span `json:"span"`
}

// ZoneState is one zone's outcome for a single evaluation run. It is rebuilt
// on every evaluation and never persisted beyond the serialized report.
type ZoneState struct {
	ZoneID          string         `json:"zone_id"`
	ZoneName        string         `json:"zone_name"`
	Status          ZoneStatus     `json:"status"`
	Required        bool           `json:"required"`
	MatchedLabels   []string       `json:"matched_labels,omitempty"`
	MatchedEntities map[string]int `json:"matched_entities,omitempty"`
	Segments        []SegmentRef   `json:"segments,omitempty"`
	CandidateRules  []string       `json:"candidate_rules,omitempty"`
	FiredRules      []string       `json:"fired_rules,omitempty"`
	MissingRules    []string       `json:"missing_rules,omitempty"`
}

// Report is the per-run coverage accounting across all zones.
type Report struct {
	SpecVersion int         `json:"spec_version"`
	Zones       []ZoneState `json:"zones"`
}

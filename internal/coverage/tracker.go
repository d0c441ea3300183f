// Package coverage audits how much of a configured zone map of legal topics
// was actually inspected: per zone, whether expected content was seen,
// whether candidate rules existed, and whether any fired.
package coverage

import (
	"sort"
	"strings"

	"clausecheck/internal/segment"
)

// maxEvidenceSegments caps the evidentiary (segment, span) pairs per zone.
const maxEvidenceSegments = 8

// Build computes the coverage report for one evaluation run. It always
// succeeds given a spec: zero segments simply report every zone missing.
// Rule ids referenced by zones are filtered through known; unknown ids are
// dropped silently so a spec may reference retired rules without breaking
// the report.
func Build(spec *Spec, segments []segment.Clause, candidatesBySegment [][]string, fired map[string]struct{}, known func(string) bool) *Report {
	if spec == nil {
		return nil
	}
	if known == nil {
		known = func(string) bool { return true }
	}

	states := make([]ZoneState, len(spec.Zones))
	candidateSets := make([]map[string]struct{}, len(spec.Zones))
	for i, zone := range spec.Zones {
		states[i] = ZoneState{
			ZoneID:          zone.ID,
			ZoneName:        zone.Name,
			Status:          StatusMissing,
			Required:        zone.Required,
			MatchedEntities: make(map[string]int),
		}
		candidateSets[i] = make(map[string]struct{})
	}

	for segIdx := range segments {
		seg := &segments[segIdx]
		normText := NormalizeLabel(seg.Text)
		normType := strings.ReplaceAll(NormalizeLabel(seg.Type), "_", " ")

		var segCandidates []string
		if segIdx < len(candidatesBySegment) {
			segCandidates = filterKnown(candidatesBySegment[segIdx], known)
		}

		for zoneIdx := range spec.Zones {
			zone := &spec.Zones[zoneIdx]
			state := &states[zoneIdx]

			matched, labels := matchZoneLabels(zone, normText, normType)
			if matched {
				promote(state, StatusPresent)
				state.MatchedLabels = union(state.MatchedLabels, labels)
				for selector, on := range zone.EntitySelectors {
					if on {
						state.MatchedEntities[selector] += countEntities(selector, seg.Text)
					}
				}
				if len(state.Segments) < maxEvidenceSegments {
					state.Segments = append(state.Segments, SegmentRef{Index: segIdx, Span: seg.Span})
				}
			}

			declared := filterKnown(zone.RuleIDs, known)
			if candidateHit(declared, segCandidates) {
				promote(state, StatusRulesCandidate)
				for _, id := range segCandidates {
					candidateSets[zoneIdx][id] = struct{}{}
				}
			}
		}
	}

	for zoneIdx := range spec.Zones {
		zone := &spec.Zones[zoneIdx]
		state := &states[zoneIdx]
		declared := filterKnown(zone.RuleIDs, known)

		firedHere := intersectFired(declared, candidateSets[zoneIdx], fired)
		if len(firedHere) > 0 {
			promote(state, StatusRulesFired)
		}

		state.CandidateRules = sortedKeys(candidateSets[zoneIdx])
		state.FiredRules = firedHere
		if len(declared) > 0 {
			state.MissingRules = subtract(declared, fired)
		}
	}

	return &Report{SpecVersion: spec.Version, Zones: states}
}

// matchZoneLabels evaluates a zone's label selectors against one segment.
// label_none is a veto: if violated the zone cannot match this segment at
// all. A zone with no any/all selectors never label-matches; such zones are
// rule-driven only.
func matchZoneLabels(zone *Zone, normText, normType string) (bool, []string) {
	for _, label := range zone.LabelNone {
		if labelPresent(label, normText, normType) {
			return false, nil
		}
	}

	var matched []string
	anyHit := false
	for _, label := range zone.LabelAny {
		if labelPresent(label, normText, normType) {
			anyHit = true
			matched = append(matched, NormalizeLabel(label))
		}
	}
	allHit := len(zone.LabelAll) > 0
	for _, label := range zone.LabelAll {
		if labelPresent(label, normText, normType) {
			matched = append(matched, NormalizeLabel(label))
		} else {
			allHit = false
		}
	}

	switch {
	case len(zone.LabelAny) == 0 && len(zone.LabelAll) == 0:
		return false, nil
	case len(zone.LabelAny) > 0 && !anyHit:
		return false, nil
	case len(zone.LabelAll) > 0 && !allHit:
		return false, nil
	}
	return true, matched
}

// labelPresent reports whether any variant of the selector label occurs in
// the normalized segment text or equals the segment's clause type.
func labelPresent(label, normText, normType string) bool {
	for _, variant := range labelVariants(label) {
		if variant == normType || strings.Contains(normText, variant) {
			return true
		}
	}
	return false
}

// candidateHit reports whether a segment's candidate rules advance the zone:
// an intersection with the declared set, or any candidate at all when the
// zone declares no specific rules.
func candidateHit(declared, segCandidates []string) bool {
	if len(segCandidates) == 0 {
		return false
	}
	if len(declared) == 0 {
		return true
	}
	for _, want := range declared {
		for _, got := range segCandidates {
			if want == got {
				return true
			}
		}
	}
	return false
}

// intersectFired picks the fired rules attributable to this zone: declared
// rules when the zone names them, otherwise the candidates observed on the
// zone's own segments.
func intersectFired(declared []string, candidates map[string]struct{}, fired map[string]struct{}) []string {
	var pool []string
	if len(declared) > 0 {
		pool = declared
	} else {
		pool = sortedKeys(candidates)
	}
	var out []string
	for _, id := range pool {
		if _, ok := fired[id]; ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// promote raises a zone status; it never lowers one.
func promote(state *ZoneState, status ZoneStatus) {
	if status > state.Status {
		state.Status = status
	}
}

func filterKnown(ids []string, known func(string) bool) []string {
	var out []string
	for _, id := range ids {
		if known(id) {
			out = append(out, id)
		}
	}
	return out
}

func union(existing []string, add []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		seen[s] = struct{}{}
	}
	for _, s := range add {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			existing = append(existing, s)
		}
	}
	sort.Strings(existing)
	return existing
}

func subtract(ids []string, remove map[string]struct{}) []string {
	var out []string
	for _, id := range ids {
		if _, ok := remove[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

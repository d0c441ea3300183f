// Package segment turns raw contract text into an ordered sequence of
// addressable clause spans. Segmentation is a pure function of the input
// text - no I/O, no side effects - so the same document always yields the
// same clauses with the same ids.
package segment

import (
	"regexp"
	"sort"
	"strings"
)

// minBlockBytes drops degenerate blocks left over from boundary cutting.
const minBlockBytes = 2

var (
	numberedHeadingRe = regexp.MustCompile(`^\(?\d+(\.\d+)*[.):]?\s+\S`)
	letterHeadingRe   = regexp.MustCompile(`^\(?[a-zA-Z][.)]\s+\S`)
	romanHeadingRe    = regexp.MustCompile(`(?i)^[ivxlcdm]+[.)]\s+\S`)
	sectionHeadingRe  = regexp.MustCompile(`(?i)^(section|clause|article)\s+\d+`)
)

// Segment splits a document into clauses. It never fails; an empty document
// yields an empty list. Boundaries come from a fixed battery of heading
// patterns; when none match, the document is split on blank-line paragraphs.
func Segment(doc string) []Clause {
	if strings.TrimSpace(doc) == "" {
		return nil
	}

	boundaries := findBoundaries(doc)

	var blocks []Span
	if len(boundaries) > 0 {
		blocks = cutAt(doc, boundaries)
	} else {
		blocks = paragraphBlocks(doc)
	}

	clauses := make([]Clause, 0, len(blocks))
	for _, span := range blocks {
		text := doc[span.Start:span.End()]
		if len(text) < minBlockBytes {
			continue
		}
		title := firstLine(text)
		clauses = append(clauses, Clause{
			ID:          clauseID(span, text),
			Type:        sniffType(title, text),
			Span:        span,
			Text:        text,
			Title:       title,
			Anchors:     anchorsFor(doc, span),
			ContentHash: Digest(text),
		})
	}
	return clauses
}

// findBoundaries returns sorted, de-duplicated byte offsets of heading-like
// line starts. If text precedes the first heading, offset 0 is included so
// the preamble becomes its own block rather than being lost.
func findBoundaries(doc string) []int {
	seen := make(map[int]struct{})
	offset := 0
	for offset <= len(doc) {
		end := strings.IndexByte(doc[offset:], '\n')
		var line string
		if end < 0 {
			line = doc[offset:]
			end = len(doc) - offset
		} else {
			line = doc[offset : offset+end]
		}
		if isHeadingLine(line) {
			seen[offset] = struct{}{}
		}
		offset += end + 1
	}
	if len(seen) == 0 {
		return nil
	}

	boundaries := make([]int, 0, len(seen)+1)
	for b := range seen {
		boundaries = append(boundaries, b)
	}
	sort.Ints(boundaries)

	if boundaries[0] > 0 && strings.TrimSpace(doc[:boundaries[0]]) != "" {
		boundaries = append([]int{0}, boundaries...)
	}
	return boundaries
}

func isHeadingLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if numberedHeadingRe.MatchString(trimmed) ||
		letterHeadingRe.MatchString(trimmed) ||
		romanHeadingRe.MatchString(trimmed) ||
		sectionHeadingRe.MatchString(trimmed) {
		return true
	}
	return isCapsHeading(trimmed)
}

// isCapsHeading matches short ALL-CAPS lines like "TERMINATION" or
// "GOVERNING LAW:". Lines with any lowercase letter, no letters at all, or
// paragraph-like length do not qualify.
func isCapsHeading(line string) bool {
	if len(line) < minBlockBytes || len(line) > 80 {
		return false
	}
	letters := 0
	for _, r := range line {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= 'A' && r <= 'Z':
			letters++
		case r >= '0' && r <= '9', r == ' ', r == ',', r == '&', r == '/', r == '-', r == ':', r == '.', r == '(', r == ')':
			// allowed heading punctuation
		default:
			return false
		}
	}
	return letters >= minBlockBytes
}

// cutAt turns boundary offsets into contiguous trimmed spans.
func cutAt(doc string, boundaries []int) []Span {
	spans := make([]Span, 0, len(boundaries))
	for i, start := range boundaries {
		end := len(doc)
		if i+1 < len(boundaries) {
			end = boundaries[i+1]
		}
		if s, ok := trimmedSpan(doc, start, end); ok {
			spans = append(spans, s)
		}
	}
	return spans
}

var paragraphSepRe = regexp.MustCompile(`\n[ \t]*\n`)

// paragraphBlocks splits on blank-line separators when no headings exist.
func paragraphBlocks(doc string) []Span {
	seps := paragraphSepRe.FindAllStringIndex(doc, -1)
	spans := make([]Span, 0, len(seps)+1)
	start := 0
	for _, sep := range seps {
		if s, ok := trimmedSpan(doc, start, sep[0]); ok {
			spans = append(spans, s)
		}
		start = sep[1]
	}
	if s, ok := trimmedSpan(doc, start, len(doc)); ok {
		spans = append(spans, s)
	}
	return spans
}

// trimmedSpan shrinks [start, end) to exclude surrounding whitespace so a
// clause's text equals the document slice its span addresses.
func trimmedSpan(doc string, start, end int) (Span, bool) {
	for start < end && isSpace(doc[start]) {
		start++
	}
	for end > start && isSpace(doc[end-1]) {
		end--
	}
	if end-start < minBlockBytes {
		return Span{}, false
	}
	return NewSpan(start, end-start, len(doc)), true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return strings.TrimSpace(text[:i])
	}
	return strings.TrimSpace(text)
}

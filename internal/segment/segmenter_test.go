package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoClauseDoc = "TERMINATION\n" +
	"Either party may terminate for convenience.\n" +
	"\n" +
	"GOVERNING LAW\n" +
	"This agreement is governed by the laws of Scotland and the parties submit to the courts of England.\n"

func TestSegmentCapsHeadings(t *testing.T) {
	clauses := Segment(twoClauseDoc)
	require.Len(t, clauses, 2)

	assert.Equal(t, "termination", clauses[0].Type)
	assert.Equal(t, "TERMINATION", clauses[0].Title)
	assert.Equal(t, "governing_law", clauses[1].Type)
	assert.Equal(t, "GOVERNING LAW", clauses[1].Title)
}

func TestSegmentEmptyDocument(t *testing.T) {
	assert.Empty(t, Segment(""))
	assert.Empty(t, Segment("   \n\n\t  "))
}

func TestSegmentSpansAddressTheirText(t *testing.T) {
	docs := []string{
		twoClauseDoc,
		"1. Scope\nThe supplier provides services.\n2. Fees\nFees are due monthly.",
		"Just a paragraph with no headings at all.\n\nAnd a second paragraph after a blank line.",
	}
	for _, doc := range docs {
		for _, c := range Segment(doc) {
			require.LessOrEqual(t, int(c.Span.End()), len(doc))
			assert.Equal(t, doc[c.Span.Start:c.Span.End()], c.Text)
			assert.Equal(t, strings.TrimSpace(c.Text), c.Text)
		}
	}
}

func TestSegmentPreambleBecomesBlock(t *testing.T) {
	doc := "This Master Services Agreement is made between the parties.\n\n" +
		"CONFIDENTIALITY\nEach party shall keep confidential information secret.\n"
	clauses := Segment(doc)
	require.Len(t, clauses, 2)
	assert.Equal(t, uint32(0), clauses[0].Span.Start)
	assert.Equal(t, "confidentiality", clauses[1].Type)
}

func TestSegmentNumberedHeadings(t *testing.T) {
	doc := "1. Term\nThe term is two years.\n" +
		"2. Governing Law\nThis agreement is governed by the laws of France.\n"
	clauses := Segment(doc)
	require.Len(t, clauses, 2)
	assert.Equal(t, "governing_law", clauses[1].Type)
}

func TestSegmentParagraphFallback(t *testing.T) {
	doc := "the parties agree to keep confidential information secret.\n\n" +
		"fees are payable within thirty days of invoice."
	clauses := Segment(doc)
	require.Len(t, clauses, 2)
	assert.Equal(t, "confidentiality", clauses[0].Type)
	assert.Equal(t, "payment", clauses[1].Type)
}

func TestSegmentDeterministic(t *testing.T) {
	first := Segment(twoClauseDoc)
	second := Segment(twoClauseDoc)
	require.Equal(t, first, second)
}

func TestSniffTypeTitleWinsOverBody(t *testing.T) {
	// The body mentions courts, but the heading names the clause.
	got := sniffType("governing law", "disputes go to the courts of England under the laws of Scotland")
	assert.Equal(t, "governing_law", got)

	assert.Equal(t, "paragraph", sniffType("misc", "nothing recognizable here"))
}

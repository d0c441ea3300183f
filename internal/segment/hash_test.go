package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClauseIDStableAndPositionSensitive(t *testing.T) {
	span := NewSpan(10, 20, 100)
	a := clauseID(span, "some clause text")
	b := clauseID(span, "some clause text")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	shifted := clauseID(NewSpan(11, 20, 100), "some clause text")
	assert.NotEqual(t, a, shifted)

	edited := clauseID(span, "some clause text.")
	assert.NotEqual(t, a, edited)
}

func TestClauseIDDiffersFromContentHash(t *testing.T) {
	span := NewSpan(0, 4, 4)
	assert.NotEqual(t, Digest("text"), clauseID(span, "text"))
}

func TestAnchorsAtDocumentEdges(t *testing.T) {
	doc := "prefix CLAUSE BODY suffix"
	whole := anchorsFor(doc, NewSpan(0, len(doc), len(doc)))
	assert.Empty(t, whole.PreHash)
	assert.Empty(t, whole.PostHash)

	inner := anchorsFor(doc, NewSpan(7, 11, len(doc)))
	assert.Len(t, inner.PreHash, anchorHexLen)
	assert.Len(t, inner.PostHash, anchorHexLen)
}

func TestAnchorWindowCapped(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	doc := string(long)
	// Context beyond the window must not affect the anchor.
	a := anchorsFor(doc, NewSpan(100, 50, len(doc)))
	b := anchorsFor(doc[:250], NewSpan(100, 50, 250))
	assert.Equal(t, a.PreHash, b.PreHash)
	assert.Equal(t, a.PostHash, b.PostHash)
}

package segment

// Span is a half-open byte range [Start, Start+Length) into the original
// document text. Spans are always absolute document coordinates and are
// clamped to the document bounds on construction.
type Span struct {
	Start  uint32 `json:"start"`
	Length uint32 `json:"length"`
}

// NewSpan builds a span clamped to [0, docLen].
func NewSpan(start, length int, docLen int) Span {
	if docLen < 0 {
		docLen = 0
	}
	if start < 0 {
		start = 0
	}
	if start > docLen {
		start = docLen
	}
	if length < 0 {
		length = 0
	}
	if start+length > docLen {
		length = docLen - start
	}
	return Span{Start: uint32(start), Length: uint32(length)}
}

// End returns the exclusive end offset.
func (s Span) End() uint32 {
	return s.Start + s.Length
}

// Clamp re-clamps the span to a document of docLen bytes.
func (s Span) Clamp(docLen int) Span {
	return NewSpan(int(s.Start), int(s.Length), docLen)
}

// IsZero reports whether the span carries no position information.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.Length == 0
}

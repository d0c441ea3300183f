package segment

// Anchors carries truncated context hashes used to re-locate a clause after
// the surrounding document is edited outside an analysis run.
type Anchors struct {
	PreHash  string `json:"pre_hash"`
	PostHash string `json:"post_hash"`
}

// Clause is one segmented, independently addressable unit of contract text.
// Clauses are created once per segmentation pass and never mutated by rules.
type Clause struct {
	ID          string  `json:"id"`
	Type        string  `json:"clause_type"`
	Span        Span    `json:"span"`
	Text        string  `json:"text"`
	Title       string  `json:"title"`
	Anchors     Anchors `json:"anchors"`
	ContentHash string  `json:"content_hash"`
}

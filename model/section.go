package model

// Section is a detected document section. Hierarchy is expressed through
// ParentID and ChildIDs; a section's HierarchyLevel is always strictly
// greater than its parent's.
type Section struct {
	ID             string   `json:"section_id"`
	Title          string   `json:"title"`
	PageNum        int      `json:"page_num"` // 1-indexed
	BBox           BBox     `json:"bbox"`
	FontSize       float64  `json:"font_size"`
	Bold           bool     `json:"bold"`
	HierarchyLevel int      `json:"hierarchy_level"`
	ParentID       string   `json:"parent_id,omitempty"`
	ChildIDs       []string `json:"child_ids,omitempty"`
}

// SpanKind identifies the kind of content a protected span holds.
type SpanKind int

const (
	// SpanKindFormula marks mathematical notation (inline or display math).
	SpanKindFormula SpanKind = iota
	// SpanKindTable marks a table or figure caption region.
	SpanKindTable
)

// String returns a human-readable representation of the span kind.
func (k SpanKind) String() string {
	switch k {
	case SpanKindFormula:
		return "formula"
	case SpanKindTable:
		return "table"
	default:
		return "unknown"
	}
}

// ProtectedSpan is an atomic text region hidden behind a placeholder token
// during chunking so it can never be split across a chunk boundary.
// Placeholder ids are unique per document and monotonically assigned.
type ProtectedSpan struct {
	PlaceholderID     string   `json:"placeholder_id"`
	Kind              SpanKind `json:"kind"`
	RawContent        string   `json:"raw_content"`
	NormalizedContent string   `json:"normalized_content,omitempty"`
}

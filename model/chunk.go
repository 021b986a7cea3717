package model

import "unicode"

// ContentType classifies what a chunk predominantly contains.
type ContentType int

const (
	// ContentTypeText is plain running text.
	ContentTypeText ContentType = iota
	// ContentTypeFormula marks a chunk containing at least one formula.
	ContentTypeFormula
	// ContentTypeTable marks a chunk containing a table or figure caption.
	ContentTypeTable
)

// String returns a human-readable representation of the content type.
func (ct ContentType) String() string {
	switch ct {
	case ContentTypeText:
		return "text"
	case ContentTypeFormula:
		return "formula"
	case ContentTypeTable:
		return "table"
	default:
		return "unknown"
	}
}

// Chunk is a size-bounded, provenance-tagged unit of document text.
// Chunks are immutable after creation. ID is a deterministic hash of the
// final restored content, so identical input always yields identical ids.
type Chunk struct {
	ID           string      `json:"chunk_id"`
	Content      string      `json:"content"`
	ContentType  ContentType `json:"content_type"`
	PageNum      int         `json:"page_num"`
	SectionID    string      `json:"section_id,omitempty"`
	SectionTitle string      `json:"section_title,omitempty"`
	Placeholders []string    `json:"placeholders,omitempty"`
	FormulaCount int         `json:"formula_count"`
	TableCount   int         `json:"table_count"`
	CharCount    int         `json:"char_count"`
	WordCount    int         `json:"word_count"`
	GroupIndex   int         `json:"group_index"`
}

// CountWords counts whitespace-delimited words in text.
func CountWords(text string) int {
	words := 0
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			inWord = true
			words++
		}
	}
	return words
}

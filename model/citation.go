package model

// Citation is the provenance record binding a chunk to its document, page,
// section, and position. At most one citation exists per chunk id.
type Citation struct {
	ChunkID       string `json:"chunk_id"`
	DocumentID    string `json:"document_id"`
	DocumentTitle string `json:"document_title"`
	PageNumber    int    `json:"page_number"`
	SectionID     string `json:"section_id,omitempty"`
	SectionTitle  string `json:"section_title,omitempty"`
	TextSnippet   string `json:"text_snippet"`
	BBox          BBox   `json:"coordinates"`
}

// SearchResult is a transient, query-scoped ranked hit returned by the
// hybrid retriever. Rank is 1-based within the result list.
type SearchResult struct {
	ChunkID  string  `json:"chunk_id"`
	Score    float64 `json:"score"`
	Rank     int     `json:"rank"`
	Content  string  `json:"content"`
	Metadata Chunk   `json:"metadata"`
}

// Package citation records exact provenance per chunk and resolves it for
// answer rendering: page, section, snippet, and position lookups, plus
// export/import for persistence handled by the caller.
//
// An Index is not safe for concurrent mutation of the same document id;
// callers processing the same document from multiple goroutines must
// serialize their writes. Distinct document ids need no synchronization
// beyond the Index's own map guarding, which the caller provides by
// confining an Index to one pipeline.
package citation

import (
	"github.com/docsift/docsift/model"
)

// DocumentInfo identifies the source document for new citations.
type DocumentInfo struct {
	ID    string
	Title string
}

// Index stores at most one citation per chunk id, with per-document
// membership for bulk lookup and removal.
type Index struct {
	citations map[string]model.Citation
	byDoc     map[string][]string // document id -> chunk ids, in add order
}

// NewIndex creates an empty citation index.
func NewIndex() *Index {
	return &Index{
		citations: make(map[string]model.Citation),
		byDoc:     make(map[string][]string),
	}
}

// Add records provenance for a chunk. Section context is resolved by direct
// section-id match first, else by the nearest section whose page does not
// exceed the chunk's page. Re-adding a chunk id replaces its citation.
func (idx *Index) Add(chunk model.Chunk, doc DocumentInfo, sections []model.Section, bbox model.BBox) {
	citation := model.Citation{
		ChunkID:       chunk.ID,
		DocumentID:    doc.ID,
		DocumentTitle: doc.Title,
		PageNumber:    chunk.PageNum,
		TextSnippet:   Snippet(chunk.Content, DefaultSnippetLength),
		BBox:          bbox,
	}

	if section := resolveSection(chunk, sections); section != nil {
		citation.SectionID = section.ID
		citation.SectionTitle = section.Title
	}

	_, existed := idx.citations[chunk.ID]
	idx.citations[chunk.ID] = citation
	if !existed {
		idx.byDoc[doc.ID] = append(idx.byDoc[doc.ID], chunk.ID)
	}
}

// Get returns the citation for a chunk id. The second return value is false
// when the chunk is unknown.
func (idx *Index) Get(chunkID string) (model.Citation, bool) {
	citation, ok := idx.citations[chunkID]
	return citation, ok
}

// Len returns the total number of citations in the index.
func (idx *Index) Len() int {
	return len(idx.citations)
}

// ForDocument returns all citations for a document, in add order.
func (idx *Index) ForDocument(documentID string) []model.Citation {
	var out []model.Citation
	for _, chunkID := range idx.byDoc[documentID] {
		if citation, ok := idx.citations[chunkID]; ok {
			out = append(out, citation)
		}
	}
	return out
}

// BySection returns a document's citations within a specific section.
func (idx *Index) BySection(documentID, sectionID string) []model.Citation {
	var out []model.Citation
	for _, citation := range idx.ForDocument(documentID) {
		if citation.SectionID == sectionID {
			out = append(out, citation)
		}
	}
	return out
}

// ByPage returns a document's citations on a specific page (1-based).
func (idx *Index) ByPage(documentID string, pageNumber int) []model.Citation {
	var out []model.Citation
	for _, citation := range idx.ForDocument(documentID) {
		if citation.PageNumber == pageNumber {
			out = append(out, citation)
		}
	}
	return out
}

// Remove deletes all citations for a document id. Bulk removal by document
// is the only supported deletion path.
func (idx *Index) Remove(documentID string) int {
	chunkIDs := idx.byDoc[documentID]
	for _, chunkID := range chunkIDs {
		delete(idx.citations, chunkID)
	}
	delete(idx.byDoc, documentID)
	return len(chunkIDs)
}

// resolveSection finds the section a chunk belongs to: direct id match
// first, then the nearest section starting on or before the chunk's page.
func resolveSection(chunk model.Chunk, sections []model.Section) *model.Section {
	if chunk.SectionID != "" {
		for i := range sections {
			if sections[i].ID == chunk.SectionID {
				return &sections[i]
			}
		}
	}

	var best *model.Section
	for i := range sections {
		s := &sections[i]
		if s.PageNum > chunk.PageNum {
			continue
		}
		if best == nil || s.PageNum > best.PageNum {
			best = s
		}
	}
	return best
}

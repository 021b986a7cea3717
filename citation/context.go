package citation

import "strings"

// Context is the text surrounding a cited snippet on its source page.
type Context struct {
	Before string `json:"before"`
	Chunk  string `json:"chunk"`
	After  string `json:"after"`
}

// snippetAnchorLen is how many leading snippet characters are used to locate
// the snippet within the page text.
const snippetAnchorLen = 50

// ExpandContext returns before/after windows around a citation's snippet.
// The caller supplies the page text re-read from the expanded bounding box;
// the index stores no page text itself. When the snippet cannot be located
// the snippet alone is returned, never an error.
func (idx *Index) ExpandContext(chunkID, pageText string, contextChars int) (Context, bool) {
	citation, ok := idx.Get(chunkID)
	if !ok {
		return Context{}, false
	}

	snippet := citation.TextSnippet
	anchor := snippet
	if len(anchor) > snippetAnchorLen {
		anchor = anchor[:snippetAnchorLen]
	}

	start := strings.Index(pageText, anchor)
	if start < 0 {
		return Context{Chunk: snippet}, true
	}

	beforeStart := start - contextChars
	if beforeStart < 0 {
		beforeStart = 0
	}
	afterEnd := start + len(snippet) + contextChars
	if afterEnd > len(pageText) {
		afterEnd = len(pageText)
	}
	snippetEnd := start + len(snippet)
	if snippetEnd > len(pageText) {
		snippetEnd = len(pageText)
	}

	return Context{
		Before: pageText[beforeStart:start],
		Chunk:  snippet,
		After:  pageText[snippetEnd:afterEnd],
	}, true
}

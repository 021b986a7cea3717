package citation

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultSnippetLength is the default snippet budget in characters.
const DefaultSnippetLength = 200

var snippetWhitespacePattern = regexp.MustCompile(`\s+`)

// Snippet creates a representative snippet from chunk content: whitespace
// collapsed, truncated to maxLength, preferring a break at the last sentence
// terminator when it falls past 60% of the budget, else breaking at the last
// word boundary with an ellipsis.
func Snippet(content string, maxLength int) string {
	content = snippetWhitespacePattern.ReplaceAllString(strings.TrimSpace(content), " ")

	if len(content) <= maxLength {
		return content
	}

	truncated := content[:maxLength]

	sentenceEnd := strings.LastIndexAny(truncated, ".!?")
	if float64(sentenceEnd) > float64(maxLength)*0.6 {
		return truncated[:sentenceEnd+1]
	}

	if wordEnd := strings.LastIndex(truncated, " "); wordEnd > 0 {
		return truncated[:wordEnd] + "..."
	}
	return truncated + "..."
}

// FormatCitation renders a citation as a human-readable reference like
// "Annual Report, p. 12, Risk Factors". The quote is appended when
// includeQuote is set. Unknown chunk ids yield an empty string.
func (idx *Index) FormatCitation(chunkID string, includeQuote bool) string {
	citation, ok := idx.Get(chunkID)
	if !ok {
		return ""
	}

	parts := []string{citation.DocumentTitle}
	if citation.PageNumber > 0 {
		parts = append(parts, "p. "+strconv.Itoa(citation.PageNumber))
	}
	if citation.SectionTitle != "" {
		parts = append(parts, citation.SectionTitle)
	}

	formatted := strings.Join(parts, ", ")
	if includeQuote && citation.TextSnippet != "" {
		formatted += ` - "` + citation.TextSnippet + `"`
	}
	return formatted
}

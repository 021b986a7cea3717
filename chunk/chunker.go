// Package chunk implements semantic chunking of preserved document text.
// It groups related paragraphs under a size budget, keeps protected spans
// intact, and emits provenance-tagged chunks with deterministic content-hash
// ids.
package chunk

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/docsift/docsift/model"
	"github.com/docsift/docsift/preserve"
	"github.com/docsift/docsift/structure"
)

// SimilarityFunc scores the semantic similarity of two paragraphs in [0,1].
// Production backends may plug in an embedding-based implementation; the
// chunker's control flow does not change.
type SimilarityFunc func(a, b string) float64

// ChunkerConfig holds configuration options for the chunker.
type ChunkerConfig struct {
	// MaxChunkSize is the hard limit for chunk size in characters. A chunk
	// exceeds it only when a single protected span alone is larger.
	// Default: 1000
	MaxChunkSize int

	// Overlap is the budget for carrying the last paragraph of a flushed
	// chunk into the next one.
	// Default: 100
	Overlap int

	// SimilarityThreshold is the minimum score from the injected
	// similarity function for two paragraphs to be grouped.
	// Default: 0.7
	SimilarityThreshold float64

	// GroupSizeRatio caps a paragraph group at this fraction of
	// MaxChunkSize.
	// Default: 0.8
	GroupSizeRatio float64

	// OversizeRatio triggers sentence-level splitting for paragraphs
	// larger than this multiple of MaxChunkSize.
	// Default: 1.5
	OversizeRatio float64

	// Similarity is the injected similarity capability. When nil, the
	// deterministic word-overlap fallback is used instead.
	Similarity SimilarityFunc

	// Preserver configures protected-content detection.
	Preserver preserve.PreserverConfig
}

// DefaultChunkerConfig returns sensible default configuration.
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		MaxChunkSize:        1000,
		Overlap:             100,
		SimilarityThreshold: 0.7,
		GroupSizeRatio:      0.8,
		OversizeRatio:       1.5,
		Preserver:           preserve.DefaultPreserverConfig(),
	}
}

// Chunker performs semantic chunking of documents.
type Chunker struct {
	config ChunkerConfig
}

// NewChunker creates a chunker with default configuration.
func NewChunker() *Chunker {
	return &Chunker{config: DefaultChunkerConfig()}
}

// NewChunkerWithConfig creates a chunker with custom configuration.
func NewChunkerWithConfig(config ChunkerConfig) *Chunker {
	return &Chunker{config: config}
}

var paragraphBreakPattern = regexp.MustCompile(`\n\s*\n`)

// ChunkDocument chunks a document section by section, or as one implicit
// section when no sections were detected. Empty section text yields zero
// chunks; that is not an error.
func (c *Chunker) ChunkDocument(doc *model.Document) ([]model.Chunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}

	// One preserver per document pass keeps placeholder ids unique and
	// monotonic across sections.
	preserver := preserve.NewPreserverWithConfig(c.config.Preserver)

	var chunks []model.Chunk

	if len(doc.Sections) == 0 {
		chunks = append(chunks, c.chunkSection(doc.Text(), nil, preserver)...)
		return chunks, nil
	}

	for i := range doc.Sections {
		section := &doc.Sections[i]
		text := structure.SectionText(doc, section.ID)
		if strings.TrimSpace(text) == "" {
			continue
		}
		chunks = append(chunks, c.chunkSection(text, section, preserver)...)
	}

	return chunks, nil
}

// ChunkText chunks free-standing text without section context. Useful for
// callers that manage structure themselves.
func (c *Chunker) ChunkText(text string) []model.Chunk {
	return c.chunkSection(text, nil, preserve.NewPreserverWithConfig(c.config.Preserver))
}

// chunkSection runs the full per-section pipeline: protect, split into
// paragraphs, group semantically, emit size-bounded chunks.
func (c *Chunker) chunkSection(text string, section *model.Section, preserver *preserve.Preserver) []model.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	protected, pmap := preserver.Protect(text)
	paragraphs := c.splitParagraphs(protected)
	groups := c.groupParagraphs(paragraphs)

	var chunks []model.Chunk
	for groupIdx, group := range groups {
		groupText := strings.Join(group, "\n\n")

		if len(groupText) <= c.config.MaxChunkSize {
			chunks = append(chunks, c.createChunk(groupText, pmap, preserver, section, groupIdx))
			continue
		}
		chunks = append(chunks, c.splitLargeGroup(group, pmap, preserver, section, groupIdx)...)
	}

	return chunks
}

// splitParagraphs splits protected text on blank-line boundaries. Paragraphs
// beyond OversizeRatio of the budget are further split at sentence
// boundaries, greedily packed up to MaxChunkSize. Placeholder tokens contain
// no sentence terminators or blank lines, so protected spans survive intact.
func (c *Chunker) splitParagraphs(text string) []string {
	oversize := int(float64(c.config.MaxChunkSize) * c.config.OversizeRatio)

	var paragraphs []string
	for _, part := range paragraphBreakPattern.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if len(part) <= oversize {
			paragraphs = append(paragraphs, part)
			continue
		}

		var current strings.Builder
		for _, sentence := range splitSentences(part) {
			if current.Len() > 0 && current.Len()+len(sentence)+1 > c.config.MaxChunkSize {
				paragraphs = append(paragraphs, strings.TrimSpace(current.String()))
				current.Reset()
			}
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(sentence)
		}
		if current.Len() > 0 {
			paragraphs = append(paragraphs, strings.TrimSpace(current.String()))
		}
	}

	return paragraphs
}

// groupParagraphs merges adjacent related paragraphs into groups.
func (c *Chunker) groupParagraphs(paragraphs []string) [][]string {
	if len(paragraphs) == 0 {
		return nil
	}

	groups := [][]string{{paragraphs[0]}}
	for i := 1; i < len(paragraphs); i++ {
		prev := paragraphs[i-1]
		cur := paragraphs[i]

		if c.shouldGroup(prev, cur) {
			groups[len(groups)-1] = append(groups[len(groups)-1], cur)
		} else {
			groups = append(groups, []string{cur})
		}
	}
	return groups
}

// shouldGroup decides whether two adjacent paragraphs belong together:
// their combined size must fit the group budget, the pair may contain at
// most one placeholder token, and the similarity signal must clear its
// threshold.
func (c *Chunker) shouldGroup(prev, cur string) bool {
	if float64(len(prev)+len(cur)) > float64(c.config.MaxChunkSize)*c.config.GroupSizeRatio {
		return false
	}

	if len(preserve.FindPlaceholders(prev+cur)) > 1 {
		return false
	}

	if c.config.Similarity != nil {
		return c.config.Similarity(prev, cur) >= c.config.SimilarityThreshold
	}
	return WordOverlapSimilarity(prev, cur) >= WordOverlapThreshold
}

// splitLargeGroup splits an oversized group paragraph by paragraph into a
// running buffer, flushing whenever the next paragraph would exceed the
// budget. The last paragraph is carried forward as overlap when it fits the
// overlap budget.
func (c *Chunker) splitLargeGroup(paragraphs []string, pmap *preserve.PreservationMap, preserver *preserve.Preserver, section *model.Section, groupIdx int) []model.Chunk {
	var chunks []model.Chunk
	var buffer []string
	bufferLen := 0

	join := func(parts []string) string { return strings.Join(parts, "\n\n") }

	for _, para := range paragraphs {
		if bufferLen > 0 && bufferLen+len(para) > c.config.MaxChunkSize {
			chunks = append(chunks, c.createChunk(join(buffer), pmap, preserver, section, groupIdx))

			last := buffer[len(buffer)-1]
			if len(last) < c.config.Overlap {
				buffer = []string{last, para}
			} else {
				buffer = []string{para}
			}
		} else {
			buffer = append(buffer, para)
		}
		bufferLen = len(join(buffer))
	}

	if strings.TrimSpace(join(buffer)) != "" {
		chunks = append(chunks, c.createChunk(join(buffer), pmap, preserver, section, groupIdx))
	}

	return chunks
}

// createChunk restores placeholders and assembles the final immutable chunk.
func (c *Chunker) createChunk(protectedText string, pmap *preserve.PreservationMap, preserver *preserve.Preserver, section *model.Section, groupIdx int) model.Chunk {
	restored := preserver.Restore(protectedText, pmap)
	placeholders := preserve.FindPlaceholders(protectedText)

	formulaCount := 0
	tableCount := 0
	for _, p := range placeholders {
		if strings.Contains(p, "FORMULA") {
			formulaCount++
		} else {
			tableCount++
		}
	}

	contentType := model.ContentTypeText
	if formulaCount > 0 {
		contentType = model.ContentTypeFormula
	} else if tableCount > 0 {
		contentType = model.ContentTypeTable
	}

	chunk := model.Chunk{
		ID:           ChunkID(restored),
		Content:      restored,
		ContentType:  contentType,
		PageNum:      1,
		Placeholders: placeholders,
		FormulaCount: formulaCount,
		TableCount:   tableCount,
		CharCount:    len(restored),
		WordCount:    model.CountWords(restored),
		GroupIndex:   groupIdx,
	}

	if section != nil {
		chunk.PageNum = section.PageNum
		chunk.SectionID = section.ID
		chunk.SectionTitle = section.Title
	}

	return chunk
}

// ChunkID derives the deterministic chunk id from restored content: the
// same input always yields the same id.
func ChunkID(content string) string {
	sum := sha256.Sum256([]byte(content))
	return "chunk_" + hex.EncodeToString(sum[:])[:12]
}

// splitSentences splits text into sentences at terminators followed by
// whitespace, skipping decimal points, lowercase-follower abbreviations, and
// single-capital initials.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)

		if r != '.' && r != '!' && r != '?' {
			continue
		}

		// A terminator inside a token ("2.5", "e.g.x") is not a boundary.
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}

		// Single capital letter before the period is an initial ("J. Smith").
		if i >= 1 && unicode.IsUpper(runes[i-1]) && (i < 2 || unicode.IsSpace(runes[i-2])) {
			continue
		}

		sentence := strings.TrimSpace(current.String())
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	remaining := strings.TrimSpace(current.String())
	if remaining != "" {
		sentences = append(sentences, remaining)
	}

	return sentences
}

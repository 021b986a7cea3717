package search

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/go-logr/logr"

	"github.com/docsift/docsift/model"
)

// ErrLengthMismatch is returned by BuildIndex when the chunk and vector
// counts differ.
var ErrLengthMismatch = errors.New("chunk and vector counts differ")

// DefaultTopK is the result count used when the caller passes topK <= 0.
const DefaultTopK = 10

// DefaultAlpha is the lexical weight used by the convenience search methods.
const DefaultAlpha = 0.5

// EngineConfig holds configuration options for the hybrid engine.
type EngineConfig struct {
	// RRFK is the rank-smoothing constant for Reciprocal Rank Fusion.
	// Default: 60
	RRFK int

	// K1 is the BM25 term-frequency saturation parameter.
	// Default: 1.5
	K1 float64

	// B is the BM25 length-normalization parameter.
	// Default: 0.75
	B float64

	// Logger receives diagnostic warnings (searching an empty engine,
	// unknown chunk ids). Defaults to a discard logger.
	Logger logr.Logger
}

// DefaultEngineConfig returns sensible default configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		RRFK:   60,
		K1:     1.5,
		B:      0.75,
		Logger: logr.Discard(),
	}
}

// Filters restrict search results by metadata field. Each field maps to the
// set of accepted values (a single-element set expresses equality). An item
// is kept only if every filter field present in its metadata matches;
// fields absent from the metadata never exclude an item.
type Filters map[string][]string

// Engine indexes chunk text lexically and externally supplied vectors
// densely, and fuses both rankings at query time.
type Engine struct {
	config EngineConfig

	texts    []string
	vectors  [][]float64
	metadata map[string]model.Chunk
	idToPos  map[string]int
	posToID  map[int]string
	lexical  *bm25Index
}

// NewEngine creates an engine with default configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultEngineConfig())
}

// NewEngineWithConfig creates an engine with custom configuration.
func NewEngineWithConfig(config EngineConfig) *Engine {
	if config.Logger.GetSink() == nil {
		config.Logger = logr.Discard()
	}
	return &Engine{config: config}
}

// Len returns the number of indexed chunks.
func (e *Engine) Len() int {
	return len(e.texts)
}

// BuildIndex replaces the engine's contents with the given chunks and their
// embedding vectors. Inputs are validated before any state changes: on a
// length mismatch the previous index is left untouched. The swap is atomic
// from the caller's perspective provided rebuilds are serialized externally.
func (e *Engine) BuildIndex(chunks []model.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: %d chunks, %d vectors", ErrLengthMismatch, len(chunks), len(vectors))
	}

	texts := make([]string, len(chunks))
	metadata := make(map[string]model.Chunk, len(chunks))
	idToPos := make(map[string]int, len(chunks))
	posToID := make(map[int]string, len(chunks))

	for i, chunk := range chunks {
		texts[i] = chunk.Content
		metadata[chunk.ID] = chunk
		idToPos[chunk.ID] = i
		posToID[i] = chunk.ID
	}

	lexical := newBM25Index(texts, e.config.K1, e.config.B)

	e.texts = texts
	e.vectors = vectors
	e.metadata = metadata
	e.idToPos = idToPos
	e.posToID = posToID
	e.lexical = lexical

	return nil
}

// Search performs hybrid retrieval. Alpha weights the lexical ranking and
// 1-alpha the vector ranking; with no query vector, or a negative alpha,
// fusion is skipped and the lexical ranking is returned. Alpha 1 reproduces
// the pure lexical order even when vectors are present, and alpha 0 the
// pure vector order. Filters apply after fusion, before truncation.
// Searching before BuildIndex returns an empty list.
func (e *Engine) Search(query string, queryVector []float64, topK int, alpha float64, filters Filters) []model.SearchResult {
	if e.Len() == 0 {
		e.config.Logger.Info("search on empty index", "query", query)
		return nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	// Deeper candidate lists feed fusion so near-miss items from either
	// signal can still surface in the fused order.
	depth := topK * 2

	lexHits := e.lexicalSearch(query, depth)

	var ranked []hit
	if queryVector != nil && alpha >= 0 {
		vecHits := e.vectorSearch(queryVector, depth)
		ranked = fuseRRF(lexHits, vecHits, alpha, e.config.RRFK)
	} else {
		ranked = lexHits
	}

	ranked = e.applyFilters(ranked, filters)
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	return e.toResults(ranked)
}

// SearchBySection restricts hybrid search to one section.
func (e *Engine) SearchBySection(query string, queryVector []float64, sectionID string, topK int) []model.SearchResult {
	return e.Search(query, queryVector, topK, DefaultAlpha, Filters{"section_id": {sectionID}})
}

// SearchByContentType restricts hybrid search to one content type, such as
// "formula" or "table".
func (e *Engine) SearchByContentType(query string, queryVector []float64, contentType string, topK int) []model.SearchResult {
	return e.Search(query, queryVector, topK, DefaultAlpha, Filters{"content_type": {contentType}})
}

// Similar finds the chunks closest to a given chunk using its own stored
// vector as the query. The chunk itself is removed from the results.
func (e *Engine) Similar(chunkID string, topK int) []model.SearchResult {
	pos, ok := e.idToPos[chunkID]
	if !ok {
		e.config.Logger.Info("similar lookup for unknown chunk", "chunk_id", chunkID)
		return nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	hits := e.vectorSearch(e.vectors[pos], topK+1)

	filtered := hits[:0:0]
	for _, h := range hits {
		if h.pos != pos {
			filtered = append(filtered, h)
		}
	}
	if len(filtered) > topK {
		filtered = filtered[:topK]
	}

	return e.toResults(filtered)
}

// lexicalSearch ranks all documents against the query with BM25. An empty
// token list yields an empty result.
func (e *Engine) lexicalSearch(query string, k int) []hit {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}
	return topHits(e.lexical.scores(tokens), k)
}

// vectorSearch ranks all documents by cosine similarity to the query
// vector, dropping non-positive similarities.
func (e *Engine) vectorSearch(queryVector []float64, k int) []hit {
	scores := make([]float64, len(e.vectors))
	for i, v := range e.vectors {
		scores[i] = cosineSimilarity(queryVector, v)
	}
	return topHits(scores, k)
}

// applyFilters keeps hits whose metadata matches every applicable filter
// field. Fields missing from a chunk's metadata do not exclude it.
func (e *Engine) applyFilters(hits []hit, filters Filters) []hit {
	if len(filters) == 0 {
		return hits
	}

	kept := hits[:0:0]
	for _, h := range hits {
		chunk := e.metadata[e.posToID[h.pos]]
		if matchesFilters(chunk, filters) {
			kept = append(kept, h)
		}
	}
	return kept
}

func matchesFilters(chunk model.Chunk, filters Filters) bool {
	for field, accepted := range filters {
		value, present := metadataValue(chunk, field)
		if !present {
			continue
		}
		if !containsString(accepted, value) {
			return false
		}
	}
	return true
}

// metadataValue extracts a filterable field from chunk metadata. The second
// return value is false when the field is not present for this chunk.
func metadataValue(chunk model.Chunk, field string) (string, bool) {
	switch field {
	case "chunk_id":
		return chunk.ID, true
	case "content_type":
		return chunk.ContentType.String(), true
	case "section_id":
		return chunk.SectionID, chunk.SectionID != ""
	case "section_title":
		return chunk.SectionTitle, chunk.SectionTitle != ""
	case "page_num":
		return strconv.Itoa(chunk.PageNum), true
	default:
		return "", false
	}
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// toResults materializes hits into SearchResults with 1-based ranks.
func (e *Engine) toResults(hits []hit) []model.SearchResult {
	results := make([]model.SearchResult, 0, len(hits))
	for i, h := range hits {
		chunkID := e.posToID[h.pos]
		results = append(results, model.SearchResult{
			ChunkID:  chunkID,
			Score:    h.score,
			Rank:     i + 1,
			Content:  e.texts[h.pos],
			Metadata: e.metadata[chunkID],
		})
	}
	return results
}

// IndexStats summarizes the engine's contents.
type IndexStats struct {
	TotalDocuments  int      `json:"total_documents"`
	TotalVectors    int      `json:"total_vectors"`
	HasLexicalIndex bool     `json:"has_lexical_index"`
	RRFK            int      `json:"rrf_k"`
	ContentTypes    []string `json:"content_types"`
	Sections        []string `json:"sections"`
}

// Stats reports summary statistics about the index.
func (e *Engine) Stats() IndexStats {
	stats := IndexStats{
		TotalDocuments:  len(e.texts),
		TotalVectors:    len(e.vectors),
		HasLexicalIndex: e.lexical != nil,
		RRFK:            e.config.RRFK,
	}

	types := make(map[string]struct{})
	sections := make(map[string]struct{})
	for _, chunk := range e.metadata {
		types[chunk.ContentType.String()] = struct{}{}
		if chunk.SectionID != "" {
			sections[chunk.SectionID] = struct{}{}
		}
	}
	for t := range types {
		stats.ContentTypes = append(stats.ContentTypes, t)
	}
	for s := range sections {
		stats.Sections = append(stats.Sections, s)
	}
	sort.Strings(stats.ContentTypes)
	sort.Strings(stats.Sections)

	return stats
}

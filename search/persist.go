package search

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/docsift/docsift/model"
)

// ErrCorruptIndex is returned by Load when a persisted blob cannot be
// decoded or fails validation. The caller decides whether to rebuild.
var ErrCorruptIndex = errors.New("corrupt index blob")

// primaryBlob is the serialized core of the index: texts, vectors, chunk
// metadata, the position-ordered chunk ids (from which both id maps are
// rebuilt), and the fusion constant.
type primaryBlob struct {
	Texts    []string               `json:"texts"`
	Vectors  [][]float64            `json:"vectors"`
	Metadata map[string]model.Chunk `json:"metadata"`
	ChunkIDs []string               `json:"chunk_ids"`
	RRFK     int                    `json:"rrf_k"`
}

// lexicalBlob is the optional serialized BM25 index. When absent on load,
// the lexical index is rebuilt from the primary blob's texts.
type lexicalBlob struct {
	K1        float64          `json:"k1"`
	B         float64          `json:"b"`
	DocLens   []int            `json:"doc_lens"`
	AvgDocLen float64          `json:"avg_doc_len"`
	TermFreqs []map[string]int `json:"term_freqs"`
	DocFreqs  map[string]int   `json:"doc_freqs"`
}

// Save writes the primary index blob to primary and, when lexical is
// non-nil, the lexical index blob to lexical.
func (e *Engine) Save(primary, lexical io.Writer) error {
	blob := primaryBlob{
		Texts:    e.texts,
		Vectors:  e.vectors,
		Metadata: e.metadata,
		ChunkIDs: make([]string, len(e.texts)),
		RRFK:     e.config.RRFK,
	}
	for pos := range blob.ChunkIDs {
		blob.ChunkIDs[pos] = e.posToID[pos]
	}

	if err := json.NewEncoder(primary).Encode(blob); err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}

	if lexical != nil && e.lexical != nil {
		lexBlob := lexicalBlob{
			K1:        e.lexical.k1,
			B:         e.lexical.b,
			DocLens:   e.lexical.docLens,
			AvgDocLen: e.lexical.avgDocLen,
			TermFreqs: e.lexical.termFreqs,
			DocFreqs:  e.lexical.docFreqs,
		}
		if err := json.NewEncoder(lexical).Encode(lexBlob); err != nil {
			return fmt.Errorf("encoding lexical index: %w", err)
		}
	}

	return nil
}

// Load replaces the engine's contents from persisted blobs. A nil lexical
// reader triggers a rebuild of the lexical index from the primary blob's
// texts. Like BuildIndex, Load validates everything before swapping state:
// a corrupt blob leaves the previous index intact.
func (e *Engine) Load(primary, lexical io.Reader) error {
	var blob primaryBlob
	if err := json.NewDecoder(primary).Decode(&blob); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptIndex, err)
	}

	if len(blob.Vectors) != len(blob.Texts) || len(blob.ChunkIDs) != len(blob.Texts) {
		return fmt.Errorf("%w: %d texts, %d vectors, %d chunk ids",
			ErrCorruptIndex, len(blob.Texts), len(blob.Vectors), len(blob.ChunkIDs))
	}

	var lexIndex *bm25Index
	if lexical != nil {
		var lexBlob lexicalBlob
		if err := json.NewDecoder(lexical).Decode(&lexBlob); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptIndex, err)
		}
		if len(lexBlob.DocLens) != len(blob.Texts) || len(lexBlob.TermFreqs) != len(blob.Texts) {
			return fmt.Errorf("%w: lexical index does not match %d documents",
				ErrCorruptIndex, len(blob.Texts))
		}
		lexIndex = &bm25Index{
			k1:        lexBlob.K1,
			b:         lexBlob.B,
			numDocs:   len(blob.Texts),
			docLens:   lexBlob.DocLens,
			avgDocLen: lexBlob.AvgDocLen,
			termFreqs: lexBlob.TermFreqs,
			docFreqs:  lexBlob.DocFreqs,
		}
	} else {
		lexIndex = newBM25Index(blob.Texts, e.config.K1, e.config.B)
	}

	idToPos := make(map[string]int, len(blob.ChunkIDs))
	posToID := make(map[int]string, len(blob.ChunkIDs))
	for pos, id := range blob.ChunkIDs {
		idToPos[id] = pos
		posToID[pos] = id
	}

	if blob.Metadata == nil {
		blob.Metadata = make(map[string]model.Chunk)
	}

	e.texts = blob.Texts
	e.vectors = blob.Vectors
	e.metadata = blob.Metadata
	e.idToPos = idToPos
	e.posToID = posToID
	e.lexical = lexIndex
	if blob.RRFK > 0 {
		e.config.RRFK = blob.RRFK
	}

	return nil
}

// LexicalPath derives the secondary blob path from the primary one, in the
// way SaveFile and LoadFile pair the two files on disk.
func LexicalPath(path string) string {
	ext := ""
	if i := strings.LastIndex(path, "."); i > strings.LastIndex(path, "/") {
		ext = path[i:]
		path = path[:i]
	}
	return path + "_lexical" + ext
}

// SaveFile writes the primary blob to path and the lexical blob alongside
// it at LexicalPath(path).
func (e *Engine) SaveFile(path string) error {
	primary, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating index file: %w", err)
	}
	defer primary.Close()

	lexical, err := os.Create(LexicalPath(path))
	if err != nil {
		return fmt.Errorf("creating lexical index file: %w", err)
	}
	defer lexical.Close()

	return e.Save(primary, lexical)
}

// LoadFile reads the primary blob from path. When the paired lexical file
// is missing, the lexical index is rebuilt from the loaded texts.
func (e *Engine) LoadFile(path string) error {
	primary, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening index file: %w", err)
	}
	defer primary.Close()

	lexical, err := os.Open(LexicalPath(path))
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("opening lexical index file: %w", err)
		}
		return e.Load(primary, nil)
	}
	defer lexical.Close()

	return e.Load(primary, lexical)
}

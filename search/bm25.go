package search

import "math"

// bm25Index is an in-memory BM25 (Okapi) index over tokenized chunk text.
type bm25Index struct {
	k1        float64
	b         float64
	numDocs   int
	docLens   []int
	avgDocLen float64
	termFreqs []map[string]int // per document: term -> occurrences
	docFreqs  map[string]int   // term -> number of documents containing it
}

// newBM25Index tokenizes the given texts and builds the index.
func newBM25Index(texts []string, k1, b float64) *bm25Index {
	idx := &bm25Index{
		k1:        k1,
		b:         b,
		numDocs:   len(texts),
		docLens:   make([]int, len(texts)),
		termFreqs: make([]map[string]int, len(texts)),
		docFreqs:  make(map[string]int),
	}

	totalLen := 0
	for i, text := range texts {
		tokens := Tokenize(text)
		idx.docLens[i] = len(tokens)
		totalLen += len(tokens)

		freqs := make(map[string]int)
		for _, tok := range tokens {
			freqs[tok]++
		}
		idx.termFreqs[i] = freqs

		for term := range freqs {
			idx.docFreqs[term]++
		}
	}

	if idx.numDocs > 0 {
		idx.avgDocLen = float64(totalLen) / float64(idx.numDocs)
	}

	return idx
}

// idf computes the inverse document frequency for a term. The +1 inside the
// log keeps scores non-negative for terms present in most documents.
func (idx *bm25Index) idf(term string) float64 {
	df := float64(idx.docFreqs[term])
	n := float64(idx.numDocs)
	return math.Log(1 + (n-df+0.5)/(df+0.5))
}

// scores computes the BM25 score of every document against the query
// tokens. The result slice is indexed by document position.
func (idx *bm25Index) scores(queryTokens []string) []float64 {
	out := make([]float64, idx.numDocs)
	if idx.numDocs == 0 || len(queryTokens) == 0 {
		return out
	}

	for _, term := range queryTokens {
		if idx.docFreqs[term] == 0 {
			continue
		}
		idf := idx.idf(term)

		for i := 0; i < idx.numDocs; i++ {
			tf := float64(idx.termFreqs[i][term])
			if tf == 0 {
				continue
			}
			dl := float64(idx.docLens[i])
			norm := 1 - idx.b + idx.b*dl/idx.avgDocLen
			out[i] += idf * tf * (idx.k1 + 1) / (tf + idx.k1*norm)
		}
	}

	return out
}

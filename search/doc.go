// Package search provides hybrid retrieval over document chunks, fusing a
// BM25 lexical ranking with cosine vector similarity through Reciprocal
// Rank Fusion (RRF).
//
// # Building
//
// The [Engine] is populated with chunks and their externally supplied
// embedding vectors:
//
//	engine := search.NewEngine()
//	if err := engine.BuildIndex(chunks, vectors); err != nil {
//	    // handle error
//	}
//
// BuildIndex validates its inputs before touching any state: a failed
// rebuild leaves the previous index intact.
//
// # Searching
//
//	results := engine.Search("discount rate", queryVector, 10, 0.5, nil)
//
// Alpha weights the lexical list; 1-alpha weights the vector list. With no
// query vector the lexical ranking is returned directly. Searching an empty
// engine returns an empty list, never an error.
//
// # Concurrency
//
// Search and Similar are pure reads over the built state and may run
// concurrently with each other. BuildIndex and Load are single-writer,
// full-rebuild operations: callers must not search during a rebuild unless
// they synchronize externally, for example with a lock or by swapping in a
// freshly built Engine.
package search

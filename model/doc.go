// Package model defines the core data types shared across the docsift
// pipeline: page-layout input from the extraction collaborator, detected
// sections, protected spans, chunks, citations, and search results.
//
// # Layout Input
//
// The layout collaborator supplies one [Page] per document page. Each page
// carries positioned text [Span] values and optional table bounding boxes.
// Pages are immutable once handed to the pipeline.
//
// # Derived Types
//
// The pipeline produces:
//
//   - [Section] - a detected heading with hierarchy links expressed via ids
//   - [ProtectedSpan] - an atomic region (formula or table caption) that must
//     never be split across chunk boundaries
//   - [Chunk] - a size-bounded, provenance-tagged unit of text
//   - [Citation] - the provenance record binding a chunk to its source
//   - [SearchResult] - a transient, query-scoped ranked hit
//
// Section trees are expressed through ParentID/ChildIDs rather than pointers
// so they serialize cleanly and cannot form ownership cycles.
package model

// Package docsift turns raw page-layout data into provenance-tagged,
// content-preserving text chunks and retrieves them with hybrid
// lexical+vector search.
//
// Basic usage:
//
//	doc := model.NewDocument("", "Annual Report")
//	doc.AddPage(&model.Page{Spans: spans})
//
//	result, err := docsift.NewProcessor().Process(doc)
//	if err != nil {
//	    // handle error
//	}
//
//	engine := search.NewEngine()
//	err = engine.BuildIndex(result.Chunks, vectors) // vectors from your embedder
//
// Processing runs structure detection, content preservation, semantic
// chunking, and citation indexing in one pass. Embedding generation and
// vector storage stay outside this module: the caller supplies one vector
// per chunk when building the search engine.
//
// Each pipeline instance touches only its own document-local data, so
// independent documents may be processed concurrently with separate
// Processor results.
package docsift

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/docsift/docsift/chunk"
	"github.com/docsift/docsift/citation"
	"github.com/docsift/docsift/model"
	"github.com/docsift/docsift/structure"
)

// ProcessorConfig holds configuration for the processing pipeline.
type ProcessorConfig struct {
	// Detector configures section detection.
	Detector structure.DetectorConfig

	// Chunker configures semantic chunking, including the injected
	// similarity capability.
	Chunker chunk.ChunkerConfig

	// Logger receives pipeline progress diagnostics. Defaults to a
	// discard logger.
	Logger logr.Logger
}

// DefaultProcessorConfig returns sensible default configuration.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		Detector: structure.DefaultDetectorConfig(),
		Chunker:  chunk.DefaultChunkerConfig(),
		Logger:   logr.Discard(),
	}
}

// Processor runs the single-document pipeline: structure detection, content
// preservation, semantic chunking, and citation indexing, strictly in that
// order.
type Processor struct {
	config   ProcessorConfig
	detector *structure.Detector
	chunker  *chunk.Chunker
}

// NewProcessor creates a processor with default configuration.
func NewProcessor() *Processor {
	return NewProcessorWithConfig(DefaultProcessorConfig())
}

// NewProcessorWithConfig creates a processor with custom configuration.
func NewProcessorWithConfig(config ProcessorConfig) *Processor {
	if config.Logger.GetSink() == nil {
		config.Logger = logr.Discard()
	}
	return &Processor{
		config:   config,
		detector: structure.NewDetectorWithConfig(config.Detector),
		chunker:  chunk.NewChunkerWithConfig(config.Chunker),
	}
}

// Result is the output of one processing pass.
type Result struct {
	// Document is the processed document with detected sections attached.
	Document *model.Document

	// Chunks are the emitted chunks in reading order.
	Chunks []model.Chunk

	// Citations holds one provenance record per chunk.
	Citations *citation.Index

	// Stats summarizes the chunking pass.
	Stats chunk.Stats
}

// Process runs the pipeline over a document. A document without a caller-
// assigned ID receives a generated one. Documents with no detectable
// structure are chunked as a single implicit section; that is not an error.
func (p *Processor) Process(doc *model.Document) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	doc.Sections = p.detector.Detect(doc.Pages)
	p.config.Logger.V(1).Info("structure detected",
		"document_id", doc.ID, "sections", len(doc.Sections))

	chunks, err := p.chunker.ChunkDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("chunking document %s: %w", doc.ID, err)
	}

	citations := citation.NewIndex()
	docInfo := citation.DocumentInfo{ID: doc.ID, Title: doc.Title}
	for _, c := range chunks {
		citations.Add(c, docInfo, doc.Sections, chunkBBox(c, doc))
	}

	p.config.Logger.Info("document processed",
		"document_id", doc.ID, "pages", doc.PageCount(),
		"sections", len(doc.Sections), "chunks", len(chunks))

	return &Result{
		Document:  doc,
		Chunks:    chunks,
		Citations: citations,
		Stats:     chunk.ComputeStats(chunks),
	}, nil
}

// chunkBBox picks the position recorded in a chunk's citation: the anchor
// of its section when known, otherwise the full extent of its page.
func chunkBBox(c model.Chunk, doc *model.Document) model.BBox {
	if c.SectionID != "" {
		if section := doc.SectionByID(c.SectionID); section != nil {
			return section.BBox
		}
	}
	if page := doc.GetPage(c.PageNum); page != nil {
		return model.NewBBox(0, 0, page.Width, page.Height)
	}
	return model.BBox{}
}

package citation

import (
	"testing"

	"github.com/docsift/docsift/model"
)

var testDoc = DocumentInfo{ID: "doc-1", Title: "Annual Report"}

var testSections = []model.Section{
	{ID: "1", Title: "Introduction", PageNum: 1},
	{ID: "2", Title: "Risk Factors", PageNum: 3},
}

func testChunk(id string, page int, sectionID string) model.Chunk {
	return model.Chunk{
		ID:        id,
		Content:   "Content of chunk " + id + " describing the business.",
		PageNum:   page,
		SectionID: sectionID,
	}
}

func TestIndex_AddGet(t *testing.T) {
	idx := NewIndex()
	idx.Add(testChunk("c1", 1, "1"), testDoc, testSections, model.NewBBox(72, 80, 400, 500))

	citation, ok := idx.Get("c1")
	if !ok {
		t.Fatal("citation not found")
	}
	if citation.DocumentID != "doc-1" || citation.DocumentTitle != "Annual Report" {
		t.Errorf("document fields = %q/%q", citation.DocumentID, citation.DocumentTitle)
	}
	if citation.PageNumber != 1 {
		t.Errorf("PageNumber = %d, want 1", citation.PageNumber)
	}
	if citation.SectionID != "1" || citation.SectionTitle != "Introduction" {
		t.Errorf("section fields = %q/%q", citation.SectionID, citation.SectionTitle)
	}
	if citation.TextSnippet == "" {
		t.Error("TextSnippet is empty")
	}

	if _, ok := idx.Get("missing"); ok {
		t.Error("expected lookup miss for unknown chunk id")
	}
}

func TestIndex_SectionResolutionByPage(t *testing.T) {
	idx := NewIndex()

	// No direct section id: the nearest section at or before the chunk's
	// page wins.
	idx.Add(testChunk("c1", 2, ""), testDoc, testSections, model.BBox{})
	idx.Add(testChunk("c2", 4, ""), testDoc, testSections, model.BBox{})

	c1, _ := idx.Get("c1")
	if c1.SectionID != "1" {
		t.Errorf("page 2 resolved to section %q, want %q", c1.SectionID, "1")
	}
	c2, _ := idx.Get("c2")
	if c2.SectionID != "2" {
		t.Errorf("page 4 resolved to section %q, want %q", c2.SectionID, "2")
	}
}

func TestIndex_ReAddReplaces(t *testing.T) {
	idx := NewIndex()
	idx.Add(testChunk("c1", 1, "1"), testDoc, testSections, model.BBox{})
	idx.Add(testChunk("c1", 3, "2"), testDoc, testSections, model.BBox{})

	if idx.Len() != 1 {
		t.Fatalf("Len = %d, want 1", idx.Len())
	}
	citation, _ := idx.Get("c1")
	if citation.PageNumber != 3 || citation.SectionID != "2" {
		t.Errorf("citation not replaced: %+v", citation)
	}
	if got := idx.ForDocument("doc-1"); len(got) != 1 {
		t.Errorf("ForDocument has %d entries, want 1", len(got))
	}
}

func TestIndex_Lookups(t *testing.T) {
	idx := NewIndex()
	idx.Add(testChunk("c1", 1, "1"), testDoc, testSections, model.BBox{})
	idx.Add(testChunk("c2", 3, "2"), testDoc, testSections, model.BBox{})
	idx.Add(testChunk("c3", 3, "2"), testDoc, testSections, model.BBox{})
	other := DocumentInfo{ID: "doc-2", Title: "Other"}
	idx.Add(testChunk("c4", 1, ""), other, nil, model.BBox{})

	if got := idx.ForDocument("doc-1"); len(got) != 3 || got[0].ChunkID != "c1" {
		t.Errorf("ForDocument = %d entries, first %q", len(got), got[0].ChunkID)
	}
	if got := idx.BySection("doc-1", "2"); len(got) != 2 {
		t.Errorf("BySection = %d entries, want 2", len(got))
	}
	if got := idx.ByPage("doc-1", 3); len(got) != 2 {
		t.Errorf("ByPage = %d entries, want 2", len(got))
	}
	if got := idx.ByPage("doc-1", 9); len(got) != 0 {
		t.Errorf("ByPage(9) = %d entries, want 0", len(got))
	}
}

func TestIndex_Remove(t *testing.T) {
	idx := NewIndex()
	idx.Add(testChunk("c1", 1, "1"), testDoc, testSections, model.BBox{})
	idx.Add(testChunk("c2", 2, ""), testDoc, testSections, model.BBox{})
	other := DocumentInfo{ID: "doc-2", Title: "Other"}
	idx.Add(testChunk("c3", 1, ""), other, nil, model.BBox{})

	if removed := idx.Remove("doc-1"); removed != 2 {
		t.Errorf("Remove = %d, want 2", removed)
	}
	if _, ok := idx.Get("c1"); ok {
		t.Error("c1 still present after Remove")
	}
	if _, ok := idx.Get("c3"); !ok {
		t.Error("other document's citation was removed")
	}
	if removed := idx.Remove("doc-1"); removed != 0 {
		t.Errorf("second Remove = %d, want 0", removed)
	}
}

func TestIndex_ExportImportRoundTrip(t *testing.T) {
	src := NewIndex()
	src.Add(testChunk("c1", 1, "1"), testDoc, testSections, model.NewBBox(72, 80, 400, 500))
	src.Add(testChunk("c2", 3, "2"), testDoc, testSections, model.BBox{})

	data, err := src.Export("")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := NewIndex()
	imported, err := dst.Import(data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if imported != 2 {
		t.Errorf("imported = %d, want 2", imported)
	}

	for _, chunkID := range []string{"c1", "c2"} {
		want, _ := src.Get(chunkID)
		got, ok := dst.Get(chunkID)
		if !ok {
			t.Fatalf("%s missing after import", chunkID)
		}
		if got != want {
			t.Errorf("%s round trip mismatch:\n got %+v\nwant %+v", chunkID, got, want)
		}
	}

	// Importing the same blob again is a no-op.
	if again, _ := dst.Import(data); again != 0 {
		t.Errorf("re-import brought in %d citations, want 0", again)
	}
}

func TestIndex_ExportByDocument(t *testing.T) {
	idx := NewIndex()
	idx.Add(testChunk("c1", 1, "1"), testDoc, testSections, model.BBox{})
	idx.Add(testChunk("c2", 1, ""), DocumentInfo{ID: "doc-2", Title: "Other"}, nil, model.BBox{})

	data, err := idx.Export("doc-2")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := NewIndex()
	if imported, _ := dst.Import(data); imported != 1 {
		t.Errorf("imported = %d, want 1", imported)
	}
	if _, ok := dst.Get("c1"); ok {
		t.Error("export leaked another document's citation")
	}
}

func TestIndex_ImportBadData(t *testing.T) {
	if _, err := NewIndex().Import([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed export data")
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		maxLength int
		want      string
	}{
		{
			"short passthrough",
			"Fits entirely.",
			200,
			"Fits entirely.",
		},
		{
			"whitespace collapsed",
			"  spread \n\n over \t lines  ",
			200,
			"spread over lines",
		},
		{
			"sentence break past threshold",
			"This sentence ends right around here. More text follows that pushes past the limit.",
			50,
			"This sentence ends right around here.",
		},
		{
			"word boundary fallback",
			"Short. Then an extremely long stretch of words continues without punctuation for quite a while longer.",
			50,
			"Short. Then an extremely long stretch of words...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Snippet(tt.content, tt.maxLength); got != tt.want {
				t.Errorf("Snippet = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatCitation(t *testing.T) {
	idx := NewIndex()
	idx.Add(testChunk("c1", 12, "2"), testDoc, testSections, model.BBox{})

	got := idx.FormatCitation("c1", false)
	want := "Annual Report, p. 12, Risk Factors"
	if got != want {
		t.Errorf("FormatCitation = %q, want %q", got, want)
	}

	withQuote := idx.FormatCitation("c1", true)
	wantQuote := want + ` - "Content of chunk c1 describing the business."`
	if withQuote != wantQuote {
		t.Errorf("FormatCitation with quote = %q, want %q", withQuote, wantQuote)
	}

	if got := idx.FormatCitation("missing", true); got != "" {
		t.Errorf("unknown chunk id formatted as %q", got)
	}
}

func TestExpandContext(t *testing.T) {
	idx := NewIndex()
	chunk := model.Chunk{ID: "c1", Content: "The quick brown fox jumps over the lazy dog.", PageNum: 1}
	idx.Add(chunk, testDoc, nil, model.BBox{})

	pageText := "AAAA " + chunk.Content + " BBBB"

	ctx, ok := idx.ExpandContext("c1", pageText, 5)
	if !ok {
		t.Fatal("expected context for known chunk")
	}
	if ctx.Before != "AAAA " || ctx.After != " BBBB" {
		t.Errorf("context windows = %q / %q", ctx.Before, ctx.After)
	}
	if ctx.Chunk != chunk.Content {
		t.Errorf("Chunk = %q", ctx.Chunk)
	}

	// Snippet absent from the supplied page text: degrade to snippet only.
	ctx, ok = idx.ExpandContext("c1", "completely unrelated page text", 5)
	if !ok {
		t.Fatal("expected graceful degradation, not a miss")
	}
	if ctx.Before != "" || ctx.After != "" || ctx.Chunk != chunk.Content {
		t.Errorf("degraded context = %+v", ctx)
	}

	if _, ok := idx.ExpandContext("missing", pageText, 5); ok {
		t.Error("unknown chunk id should report not found")
	}
}

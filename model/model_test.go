package model

import "testing"

func TestNewBBoxFromCorners(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           BBox
	}{
		{"normal order", 10, 20, 110, 50, BBox{X: 10, Y: 20, Width: 100, Height: 30}},
		{"reversed corners", 110, 50, 10, 20, BBox{X: 10, Y: 20, Width: 100, Height: 30}},
		{"zero area", 5, 5, 5, 5, BBox{X: 5, Y: 5, Width: 0, Height: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBBoxFromCorners(tt.x0, tt.y0, tt.x1, tt.y1)
			if got != tt.want {
				t.Errorf("NewBBoxFromCorners() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBBox_Union(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(20, 20, 10, 10)

	got := a.Union(b)
	want := BBox{X: 0, Y: 0, Width: 30, Height: 30}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestBBox_Intersects(t *testing.T) {
	tests := []struct {
		name string
		a, b BBox
		want bool
	}{
		{"overlapping", NewBBox(0, 0, 10, 10), NewBBox(5, 5, 10, 10), true},
		{"touching edges", NewBBox(0, 0, 10, 10), NewBBox(10, 0, 10, 10), true},
		{"disjoint", NewBBox(0, 0, 10, 10), NewBBox(20, 20, 5, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBBox_ExpandClamp(t *testing.T) {
	b := NewBBox(10, 10, 20, 20).Expand(50).Clamp(100, 40)

	if b.X != 0 || b.Y != 0 {
		t.Errorf("expected origin clamped to (0,0), got (%v,%v)", b.X, b.Y)
	}
	if b.Right() != 80 {
		t.Errorf("expected right edge 80, got %v", b.Right())
	}
	if b.Bottom() != 40 {
		t.Errorf("expected bottom edge clamped to 40, got %v", b.Bottom())
	}
}

func TestContentType_String(t *testing.T) {
	tests := []struct {
		ct   ContentType
		want string
	}{
		{ContentTypeText, "text"},
		{ContentTypeFormula, "formula"},
		{ContentTypeTable, "table"},
		{ContentType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ct.String(); got != tt.want {
				t.Errorf("ContentType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanKind_String(t *testing.T) {
	tests := []struct {
		kind SpanKind
		want string
	}{
		{SpanKindFormula, "formula"},
		{SpanKindTable, "table"},
		{SpanKind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("SpanKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"single", "hello", 1},
		{"sentence", "This is a test chunk with some text.", 8},
		{"extra whitespace", "  spaced   out\twords\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.text); got != tt.want {
				t.Errorf("CountWords() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDocument_AddPage(t *testing.T) {
	doc := NewDocument("doc-1", "Test")
	doc.AddPage(&Page{})
	doc.AddPage(&Page{})

	if doc.PageCount() != 2 {
		t.Fatalf("expected 2 pages, got %d", doc.PageCount())
	}
	if doc.Pages[0].Number != 1 || doc.Pages[1].Number != 2 {
		t.Errorf("pages not numbered sequentially: %d, %d", doc.Pages[0].Number, doc.Pages[1].Number)
	}
	if doc.GetPage(3) != nil {
		t.Error("GetPage out of range should return nil")
	}
	if doc.GetPage(1) != doc.Pages[0] {
		t.Error("GetPage(1) should return first page")
	}
}

func TestDocument_Text(t *testing.T) {
	doc := NewDocument("doc-1", "Test")
	doc.AddPage(&Page{Spans: []Span{{Text: "first"}, {Text: "second"}}})
	doc.AddPage(&Page{Spans: []Span{{Text: "third"}}})

	want := "first\nsecond\nthird"
	if got := doc.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestDocument_SectionByID(t *testing.T) {
	doc := NewDocument("doc-1", "Test")
	doc.Sections = []Section{{ID: "1", Title: "Intro"}, {ID: "2", Title: "Methods"}}

	if s := doc.SectionByID("2"); s == nil || s.Title != "Methods" {
		t.Errorf("SectionByID(2) = %+v", s)
	}
	if s := doc.SectionByID("9"); s != nil {
		t.Errorf("expected nil for unknown section, got %+v", s)
	}
}

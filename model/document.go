package model

import "strings"

// Span is a positioned run of text with uniform styling, as reported by the
// layout collaborator. A zero FontSize means the size is unknown; such spans
// are never treated as header candidates.
type Span struct {
	Text     string  `json:"text"`
	FontSize float64 `json:"font_size"`
	Bold     bool    `json:"bold"`
	BBox     BBox    `json:"bbox"`
}

// Page represents a single page of layout data. Pages are immutable once
// extracted.
type Page struct {
	Number   int     `json:"number"` // 1-indexed page number
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation int     `json:"rotation"` // Rotation angle (0, 90, 180, 270)
	Spans    []Span  `json:"spans"`
	Tables   []BBox  `json:"tables,omitempty"` // Optional table regions
}

// Text concatenates all span text on the page in span order.
func (p *Page) Text() string {
	var sb strings.Builder
	for i, span := range p.Spans {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// Document represents a complete document: its layout pages plus the
// sections detected from them.
type Document struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Pages    []*Page   `json:"pages"`
	Sections []Section `json:"sections,omitempty"`
}

// NewDocument creates a new empty document.
func NewDocument(id, title string) *Document {
	return &Document{
		ID:    id,
		Title: title,
		Pages: make([]*Page, 0),
	}
}

// AddPage adds a page to the document, assigning its 1-indexed number.
func (d *Document) AddPage(page *Page) {
	page.Number = len(d.Pages) + 1
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page by number (1-indexed), or nil if out of range.
func (d *Document) GetPage(number int) *Page {
	if number < 1 || number > len(d.Pages) {
		return nil
	}
	return d.Pages[number-1]
}

// PageCount returns the total number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Text returns all page text concatenated in page order.
func (d *Document) Text() string {
	var sb strings.Builder
	for i, page := range d.Pages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(page.Text())
	}
	return sb.String()
}

// SectionByID returns the section with the given id, or nil.
func (d *Document) SectionByID(id string) *Section {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i]
		}
	}
	return nil
}

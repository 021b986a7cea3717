package structure

import (
	"math"
	"strings"

	"github.com/docsift/docsift/model"
)

// SectionText extracts the text belonging to a section: everything from the
// section's anchor position up to the anchor of the next section in reading
// order, or the end of the document if none follows. Unknown section ids
// yield an empty string.
func SectionText(doc *model.Document, sectionID string) string {
	section := doc.SectionByID(sectionID)
	if section == nil {
		return ""
	}

	next := nextSection(doc.Sections, *section)

	startPage := section.PageNum
	startY := section.BBox.Y

	endPage := doc.PageCount()
	endY := math.Inf(1)
	if next != nil {
		endPage = next.PageNum
		endY = next.BBox.Y
	}

	var parts []string
	for pageNum := startPage; pageNum <= endPage; pageNum++ {
		page := doc.GetPage(pageNum)
		if page == nil {
			continue
		}
		for _, span := range page.Spans {
			if pageNum == startPage && span.BBox.Y < startY {
				continue
			}
			if pageNum == endPage && span.BBox.Y >= endY {
				continue
			}
			if strings.TrimSpace(span.Text) == "" {
				continue
			}
			parts = append(parts, span.Text)
		}
	}

	return strings.Join(parts, "\n")
}

// nextSection finds the section whose anchor follows the given section most
// closely in (page, y) reading order.
func nextSection(sections []model.Section, current model.Section) *model.Section {
	var next *model.Section
	for i := range sections {
		s := &sections[i]
		if s.ID == current.ID {
			continue
		}
		if !after(*s, current) {
			continue
		}
		if next == nil || after(*next, *s) {
			next = s
		}
	}
	return next
}

// after reports whether a's anchor comes after b's in reading order.
func after(a, b model.Section) bool {
	if a.PageNum != b.PageNum {
		return a.PageNum > b.PageNum
	}
	return a.BBox.Y > b.BBox.Y
}

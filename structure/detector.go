// Package structure infers a section hierarchy from font and position
// signals in page-layout data. Detection is independent of chunking: when no
// headers are found the detector returns an empty list and callers fall back
// to whole-document chunking.
package structure

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/docsift/docsift/model"
)

// DetectorConfig holds configuration options for section detection.
type DetectorConfig struct {
	// SamplePages is the number of leading pages used to estimate the
	// body-text font size.
	// Default: 3
	SamplePages int

	// HeaderFontRatio is the minimum ratio of a header candidate's font
	// size to the body-text baseline.
	// Default: 1.2
	HeaderFontRatio float64

	// MinHeaderLen is the minimum text length of a header candidate.
	// Default: 3
	MinHeaderLen int

	// MaxHeaderLen is the maximum text length of a header candidate.
	// Default: 100
	MaxHeaderLen int

	// BodyFontFallback is the assumed body font size when the sample
	// pages carry no measurable text.
	// Default: 11.0
	BodyFontFallback float64
}

// DefaultDetectorConfig returns sensible default configuration.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		SamplePages:      3,
		HeaderFontRatio:  1.2,
		MinHeaderLen:     3,
		MaxHeaderLen:     100,
		BodyFontFallback: 11.0,
	}
}

// Detector detects document sections from layout signals.
type Detector struct {
	config DetectorConfig
}

// NewDetector creates a detector with default configuration.
func NewDetector() *Detector {
	return &Detector{config: DefaultDetectorConfig()}
}

// NewDetectorWithConfig creates a detector with custom configuration.
func NewDetectorWithConfig(config DetectorConfig) *Detector {
	return &Detector{config: config}
}

// Header patterns are tried in fixed priority order; the first match wins.
var (
	numberedPattern  = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+(\S.*)$`)
	allCapsPattern   = regexp.MustCompile(`^[A-Z][A-Z\s]+$`)
	titleCasePattern = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*$`)

	numericIDPattern = regexp.MustCompile(`^(\d+(?:\.\d+)*)`)
	alphaIDPattern   = regexp.MustCompile(`^([A-Z])`)
	levelPattern     = regexp.MustCompile(`^\d+(\.\d+)*$`)
)

// Detect infers the section hierarchy for the given pages. Pages carry no
// headers at all is not an error: the result is simply empty.
func (d *Detector) Detect(pages []*model.Page) []model.Section {
	bodySize := d.estimateBodyFontSize(pages)

	var sections []model.Section
	for _, page := range pages {
		if page == nil {
			continue
		}
		for _, span := range page.Spans {
			text := strings.TrimSpace(span.Text)
			if !d.isHeaderCandidate(text, span.FontSize, bodySize) {
				continue
			}

			title, ok := matchHeaderPatterns(text)
			if !ok {
				continue
			}

			id := sectionID(text)
			sections = append(sections, model.Section{
				ID:             id,
				Title:          title,
				PageNum:        page.Number,
				BBox:           span.BBox,
				FontSize:       span.FontSize,
				Bold:           span.Bold,
				HierarchyLevel: hierarchyLevel(id),
			})
		}
	}

	return organizeHierarchy(sections)
}

// estimateBodyFontSize computes the median font size over longer text spans
// on the first few pages. Short spans (headers, captions, footers) are
// excluded by the length cutoff.
func (d *Detector) estimateBodyFontSize(pages []*model.Page) float64 {
	var sizes []float64

	sample := d.config.SamplePages
	if sample > len(pages) {
		sample = len(pages)
	}

	for i := 0; i < sample; i++ {
		if pages[i] == nil {
			continue
		}
		for _, span := range pages[i].Spans {
			if len(strings.TrimSpace(span.Text)) > 20 && span.FontSize > 0 {
				sizes = append(sizes, span.FontSize)
			}
		}
	}

	if len(sizes) == 0 {
		return d.config.BodyFontFallback
	}

	sort.Float64s(sizes)
	return sizes[len(sizes)/2]
}

// isHeaderCandidate applies the style-based filter: larger than body text,
// short, and starting with an uppercase letter or digit. A zero font size
// means the size is unknown and the span is never a header.
func (d *Detector) isHeaderCandidate(text string, fontSize, bodySize float64) bool {
	if len(text) < d.config.MinHeaderLen || len(text) > d.config.MaxHeaderLen {
		return false
	}
	if fontSize <= 0 || fontSize < bodySize*d.config.HeaderFontRatio {
		return false
	}

	first := rune(text[0])
	return unicode.IsUpper(first) || unicode.IsDigit(first)
}

// matchHeaderPatterns matches candidate text against the header patterns in
// priority order and returns the extracted title.
func matchHeaderPatterns(text string) (string, bool) {
	if m := numberedPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[2]), true
	}
	if allCapsPattern.MatchString(text) {
		return text, true
	}
	if titleCasePattern.MatchString(text) {
		return text, true
	}
	return "", false
}

// sectionID extracts the leading numeric or alpha prefix as the section id,
// falling back to a stable hash of the text.
func sectionID(text string) string {
	if m := numericIDPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := alphaIDPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	h := fnv.New32a()
	h.Write([]byte(text))
	return fmt.Sprintf("sec_%d", h.Sum32()%1000)
}

// hierarchyLevel is the count of dot-separated numeric components in the
// section id: "2" is level 1, "2.1" is level 2. Non-numeric ids default to
// the top level.
func hierarchyLevel(id string) int {
	if !levelPattern.MatchString(id) {
		return 1
	}
	return strings.Count(id, ".") + 1
}

// organizeHierarchy sorts sections into reading order and links each to the
// nearest prior section with a strictly lower hierarchy level.
func organizeHierarchy(sections []model.Section) []model.Section {
	sort.SliceStable(sections, func(i, j int) bool {
		if sections[i].PageNum != sections[j].PageNum {
			return sections[i].PageNum < sections[j].PageNum
		}
		return sections[i].BBox.Y < sections[j].BBox.Y
	})

	for i := range sections {
		for j := i - 1; j >= 0; j-- {
			if sections[j].HierarchyLevel < sections[i].HierarchyLevel {
				sections[i].ParentID = sections[j].ID
				sections[j].ChildIDs = append(sections[j].ChildIDs, sections[i].ID)
				break
			}
		}
	}

	return sections
}

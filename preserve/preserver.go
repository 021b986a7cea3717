// Package preserve protects atomic content regions (formulas, table and
// figure captions) behind placeholder tokens before any text splitting, and
// restores them afterward.
//
// Placeholder tokens are opaque, non-overlapping, and unique per document,
// so restoring any substring containing only whole placeholders reconstructs
// exactly the original substring.
package preserve

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/docsift/docsift/model"
)

// PreserverConfig holds configuration options for content preservation.
type PreserverConfig struct {
	// CaptionWindow is the maximum caption length captured after a
	// "Table N" / "Figure N" marker.
	// Default: 200
	CaptionWindow int
}

// DefaultPreserverConfig returns sensible default configuration.
func DefaultPreserverConfig() PreserverConfig {
	return PreserverConfig{
		CaptionWindow: 200,
	}
}

// Preserver replaces protected content with placeholder tokens. One
// Preserver serves one document pass: its placeholder counter is monotonic
// across all Protect calls, keeping ids unique per document.
type Preserver struct {
	config  PreserverConfig
	counter int
}

// NewPreserver creates a preserver with default configuration.
func NewPreserver() *Preserver {
	return &Preserver{config: DefaultPreserverConfig()}
}

// NewPreserverWithConfig creates a preserver with custom configuration.
func NewPreserverWithConfig(config PreserverConfig) *Preserver {
	return &Preserver{config: config}
}

// PreservationMap records the protected spans claimed during one Protect
// call, keyed by placeholder id.
type PreservationMap struct {
	spans map[string]model.ProtectedSpan
	order []string
}

// Get returns the protected span for a placeholder id.
func (m *PreservationMap) Get(id string) (model.ProtectedSpan, bool) {
	span, ok := m.spans[id]
	return span, ok
}

// Len returns the number of protected spans.
func (m *PreservationMap) Len() int {
	return len(m.order)
}

// Placeholders returns placeholder ids in claim order.
func (m *PreservationMap) Placeholders() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Formula patterns are applied in fixed priority order: block math
// environments before inline math. Matched regions are claimed and excluded
// from later patterns, so overlapping matches cannot double-count.
var formulaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)\$\$.+?\$\$`),
	regexp.MustCompile(`(?s)\\begin\{equation\}.+?\\end\{equation\}`),
	regexp.MustCompile(`(?s)\\begin\{align\}.+?\\end\{align\}`),
	regexp.MustCompile(`(?s)\\\[.+?\\\]`),
	regexp.MustCompile(`(?s)\\\(.+?\\\)`),
	regexp.MustCompile(`\$[^$\n]{2,50}\$`),
}

// currencyPattern matches dollar amounts so they are never mistaken for
// inline math.
var currencyPattern = regexp.MustCompile(`(?i)\$\d+(?:,\d{3})*(?:\.\d{2})?(?:\s*(?:million|billion|trillion|thousand|k|m|b))?`)

// captionMarkerPattern locates table and figure references that open a
// caption window.
var captionMarkerPattern = regexp.MustCompile(`(?i)(?:Table|Figure)\s+\d+`)

// captionEndPattern marks the end of a caption: a blank line or a new line
// starting with a capital letter.
var captionEndPattern = regexp.MustCompile(`\n\s*\n|\n\s*[A-Z]`)

// PlaceholderPattern matches any placeholder token emitted by Protect.
var PlaceholderPattern = regexp.MustCompile(`__(?:FORMULA|TABLE)_\d+__`)

// FindPlaceholders returns all placeholder tokens present in text, in order.
func FindPlaceholders(text string) []string {
	return PlaceholderPattern.FindAllString(text, -1)
}

// claim is a half-open [start,end) region of the input text scheduled for
// placeholder substitution.
type claim struct {
	start, end  int
	placeholder string
}

// Protect replaces formulas and table/figure captions in text with
// placeholder tokens and returns the modified text together with the map
// needed to restore it. Substitution is driven by recorded offsets, never by
// first-occurrence string matching, so identical spans cannot collide.
func (p *Preserver) Protect(text string) (string, *PreservationMap) {
	m := &PreservationMap{spans: make(map[string]model.ProtectedSpan)}

	// Currency regions block formula matching but stay in the text as-is.
	var blocked []claim
	for _, loc := range currencyPattern.FindAllStringIndex(text, -1) {
		blocked = append(blocked, claim{start: loc[0], end: loc[1]})
	}

	var claims []claim

	for _, pattern := range formulaPatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			if overlapsAny(loc[0], loc[1], blocked) || overlapsAny(loc[0], loc[1], claims) {
				continue
			}
			raw := text[loc[0]:loc[1]]
			id := p.nextID("FORMULA")
			m.add(model.ProtectedSpan{
				PlaceholderID:     id,
				Kind:              model.SpanKindFormula,
				RawContent:        raw,
				NormalizedContent: NormalizeFormula(raw),
			})
			claims = append(claims, claim{start: loc[0], end: loc[1], placeholder: id})
		}
	}

	for _, loc := range captionMarkerPattern.FindAllStringIndex(text, -1) {
		end := p.captionEnd(text, loc[0])
		if overlapsAny(loc[0], end, claims) {
			continue
		}
		raw := text[loc[0]:end]
		id := p.nextID("TABLE")
		m.add(model.ProtectedSpan{
			PlaceholderID: id,
			Kind:          model.SpanKindTable,
			RawContent:    raw,
		})
		claims = append(claims, claim{start: loc[0], end: end, placeholder: id})
	}

	return substitute(text, claims), m
}

// captionEnd finds the end offset of a caption window starting at the given
// marker offset: up to CaptionWindow characters, cut at the first blank line
// or capitalized line start past the leading 50 characters.
func (p *Preserver) captionEnd(text string, start int) int {
	end := start + p.config.CaptionWindow
	if end > len(text) {
		end = len(text)
	}

	window := text[start:end]
	if len(window) > 50 {
		if loc := captionEndPattern.FindStringIndex(window[50:]); loc != nil {
			end = start + 50 + loc[0]
		}
	}
	return end
}

// nextID allocates the next placeholder id. The counter is shared between
// formula and table spans so ids stay unique across kinds.
func (p *Preserver) nextID(kind string) string {
	id := fmt.Sprintf("__%s_%d__", kind, p.counter)
	p.counter++
	return id
}

func (m *PreservationMap) add(span model.ProtectedSpan) {
	m.spans[span.PlaceholderID] = span
	m.order = append(m.order, span.PlaceholderID)
}

// overlapsAny reports whether [start,end) intersects any existing claim.
func overlapsAny(start, end int, claims []claim) bool {
	for _, c := range claims {
		if start < c.end && c.start < end {
			return true
		}
	}
	return false
}

// substitute rebuilds the text with placeholder tokens spliced in at the
// recorded offsets.
func substitute(text string, claims []claim) string {
	if len(claims) == 0 {
		return text
	}

	sort.Slice(claims, func(i, j int) bool { return claims[i].start < claims[j].start })

	var sb strings.Builder
	pos := 0
	for _, c := range claims {
		sb.WriteString(text[pos:c.start])
		sb.WriteString(c.placeholder)
		pos = c.end
	}
	sb.WriteString(text[pos:])
	return sb.String()
}

// Restore replaces each placeholder token in text with its original raw
// content. Tokens are unique per document, so token-wise replacement is
// exact: restoring any substring containing only whole placeholders
// reproduces the original bytes.
func (p *Preserver) Restore(text string, m *PreservationMap) string {
	if m == nil || len(m.order) == 0 {
		return text
	}

	restored := text
	for _, id := range m.order {
		span := m.spans[id]
		restored = strings.ReplaceAll(restored, id, span.RawContent)
	}
	return restored
}

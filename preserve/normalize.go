package preserve

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// formulaDelimiters are stripped before normalization, longest first so
// partial delimiters cannot survive.
var formulaDelimiters = []string{
	`\begin{equation}`, `\end{equation}`,
	`\begin{align}`, `\end{align}`,
	"$$", `\[`, `\]`, `\(`, `\)`, "$",
}

// latexReplacements maps common LaTeX commands to searchable words.
var latexReplacements = map[string]string{
	`\alpha`: "alpha",
	`\beta`:  "beta",
	`\sigma`: "sigma",
	`\mu`:    "mu",
	`\sum`:   "sum",
	`\int`:   "integral",
	`\frac`:  "fraction",
	`\sqrt`:  "square_root",
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// NormalizeFormula produces a searchable plain-text form of a formula:
// delimiters removed, Unicode compatibility-normalized, whitespace
// collapsed, and common LaTeX commands replaced with words.
func NormalizeFormula(formula string) string {
	normalized := formula
	for _, delim := range formulaDelimiters {
		normalized = strings.ReplaceAll(normalized, delim, "")
	}

	normalized = norm.NFKC.String(normalized)
	normalized = whitespacePattern.ReplaceAllString(normalized, " ")
	normalized = strings.TrimSpace(normalized)

	for cmd, word := range latexReplacements {
		normalized = strings.ReplaceAll(normalized, cmd, word)
	}

	return normalized
}

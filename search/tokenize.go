package search

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var tokenPattern = regexp.MustCompile(`[a-z]+`)

// minTokenLen filters out very short tokens; terms must be longer than this.
const minTokenLen = 2

// Tokenize produces lexical index terms: the text is compatibility-
// normalized, lowercased, and split into alphabetic runs longer than two
// characters. Queries and documents are tokenized identically.
func Tokenize(text string) []string {
	text = strings.ToLower(norm.NFKC.String(text))

	var tokens []string
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		if len(tok) > minTokenLen {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

package chunk

import (
	"regexp"
	"strings"
)

// WordOverlapThreshold is the grouping threshold used with the word-overlap
// fallback. It is deliberately lower than the injected-similarity threshold:
// lexical overlap is a much coarser signal.
const WordOverlapThreshold = 0.3

var significantWordPattern = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)

// WordOverlapSimilarity is the deterministic fallback similarity: the ratio
// of shared significant words (length >= 4, lowercased) to the smaller
// paragraph's word set. Returns 0 when either paragraph has no significant
// words.
func WordOverlapSimilarity(a, b string) float64 {
	wordsA := significantWords(a)
	wordsB := significantWords(b)

	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	smaller, larger := wordsA, wordsB
	if len(wordsB) < len(wordsA) {
		smaller, larger = wordsB, wordsA
	}

	common := 0
	for w := range smaller {
		if _, ok := larger[w]; ok {
			common++
		}
	}

	return float64(common) / float64(len(smaller))
}

func significantWords(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range significantWordPattern.FindAllString(strings.ToLower(text), -1) {
		words[w] = struct{}{}
	}
	return words
}

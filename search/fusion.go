package search

import "sort"

// hit is an internal ranked reference to an indexed chunk by position.
type hit struct {
	pos   int
	score float64
}

// topHits returns the k best positions by score: descending score, ties
// broken by ascending original position (stable). Non-positive scores are
// dropped.
func topHits(scores []float64, k int) []hit {
	hits := make([]hit, 0, len(scores))
	for pos, score := range scores {
		if score > 0 {
			hits = append(hits, hit{pos: pos, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].pos < hits[j].pos
	})

	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

// fuseRRF combines two ranked lists with Reciprocal Rank Fusion: an item at
// 1-based rank r contributes weight*1/(rrfK+r). The lexical list is weighted
// by alpha, the vector list by 1-alpha, and contributions are summed per
// item. Items present in only one list receive only that list's
// contribution; items whose summed contribution is zero (weight zero on the
// only list containing them) are dropped, which makes the extreme weights
// reduce exactly to the pure single-signal rankings.
func fuseRRF(lexical, vector []hit, alpha float64, rrfK int) []hit {
	contributions := make(map[int]float64)

	for i, h := range lexical {
		contributions[h.pos] += alpha / float64(rrfK+i+1)
	}
	for i, h := range vector {
		contributions[h.pos] += (1 - alpha) / float64(rrfK+i+1)
	}

	fused := make([]hit, 0, len(contributions))
	for pos, score := range contributions {
		if score > 0 {
			fused = append(fused, hit{pos: pos, score: score})
		}
	}

	sort.Slice(fused, func(i, j int) bool {
		if fused[i].score != fused[j].score {
			return fused[i].score > fused[j].score
		}
		return fused[i].pos < fused[j].pos
	})

	return fused
}

package chunk

import "github.com/docsift/docsift/model"

// Stats contains summary statistics about a chunking pass.
type Stats struct {
	TotalChunks     int `json:"total_chunks"`
	TotalCharacters int `json:"total_characters"`
	TotalWords      int `json:"total_words"`
	FormulaChunks   int `json:"formula_chunks"`
	TableChunks     int `json:"table_chunks"`
	MinChunkSize    int `json:"min_chunk_size"`
	MaxChunkSize    int `json:"max_chunk_size"`
	AvgChunkSize    int `json:"avg_chunk_size"`
}

// ComputeStats summarizes a chunk list.
func ComputeStats(chunks []model.Chunk) Stats {
	stats := Stats{
		TotalChunks:  len(chunks),
		MinChunkSize: -1,
	}

	for _, c := range chunks {
		stats.TotalCharacters += c.CharCount
		stats.TotalWords += c.WordCount

		if stats.MinChunkSize < 0 || c.CharCount < stats.MinChunkSize {
			stats.MinChunkSize = c.CharCount
		}
		if c.CharCount > stats.MaxChunkSize {
			stats.MaxChunkSize = c.CharCount
		}

		switch c.ContentType {
		case model.ContentTypeFormula:
			stats.FormulaChunks++
		case model.ContentTypeTable:
			stats.TableChunks++
		}
	}

	if len(chunks) > 0 {
		stats.AvgChunkSize = stats.TotalCharacters / len(chunks)
	}
	if stats.MinChunkSize < 0 {
		stats.MinChunkSize = 0
	}

	return stats
}

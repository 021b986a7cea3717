package citation

import (
	"encoding/json"
	"fmt"

	"github.com/docsift/docsift/model"
)

// exportBlob is the serialized form of an index export.
type exportBlob struct {
	Citations []model.Citation `json:"citations"`
	Total     int              `json:"total_citations"`
}

// Export serializes citations for backup or transfer. When documentID is
// empty, all citations are exported; otherwise only that document's.
func (idx *Index) Export(documentID string) ([]byte, error) {
	var citations []model.Citation
	if documentID != "" {
		citations = idx.ForDocument(documentID)
	} else {
		for _, chunkIDs := range idx.byDoc {
			for _, chunkID := range chunkIDs {
				if citation, ok := idx.citations[chunkID]; ok {
					citations = append(citations, citation)
				}
			}
		}
	}

	blob := exportBlob{
		Citations: citations,
		Total:     len(citations),
	}
	return json.Marshal(blob)
}

// Import merges exported citations into the index, de-duplicating by chunk
// id within each document. Round-trips every field written by Export.
func (idx *Index) Import(data []byte) (int, error) {
	var blob exportBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return 0, fmt.Errorf("decoding citation export: %w", err)
	}

	imported := 0
	for _, citation := range blob.Citations {
		if _, exists := idx.citations[citation.ChunkID]; exists {
			continue
		}
		idx.citations[citation.ChunkID] = citation
		idx.byDoc[citation.DocumentID] = append(idx.byDoc[citation.DocumentID], citation.ChunkID)
		imported++
	}

	return imported, nil
}

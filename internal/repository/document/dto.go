package document

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
	domdoc "github.com/kailas-cloud/fuzzdex/internal/domain/document"
)

// parseJSONGetResult hydrates a Document from a JSON.GET "$" reply, which
// wraps the stored object in a one-element array.
func parseJSONGetResult(id string, raw []byte) (domdoc.Document, error) {
	var docs []map[string]any
	if err := json.Unmarshal(raw, &docs); err != nil {
		// Plain object when fetched without the "$" path
		var m map[string]any
		if err2 := json.Unmarshal(raw, &m); err2 != nil {
			return domdoc.Document{}, fmt.Errorf("unmarshal document %s: %w", id, err)
		}
		return domdoc.Reconstruct(id, m), nil
	}
	if len(docs) == 0 {
		return domdoc.Document{}, domain.ErrDocumentNotFound
	}
	return domdoc.Reconstruct(id, docs[0]), nil
}

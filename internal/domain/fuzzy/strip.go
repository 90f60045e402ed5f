package fuzzy

import (
	"strings"

	"github.com/kailas-cloud/fuzzdex/internal/domain/field"
)

// Strip returns a copy of attrs with every synthetic token attribute
// removed, so external consumers never observe index internals.
func Strip(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if strings.HasSuffix(k, field.FuzzySuffix) {
			continue
		}
		out[k] = v
	}
	return out
}

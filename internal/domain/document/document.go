package document

import (
	"fmt"
	"regexp"

	"github.com/kailas-cloud/fuzzdex/internal/domain"
	"github.com/kailas-cloud/fuzzdex/internal/domain/fuzzy"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxIDLength is the maximum document identifier length.
const MaxIDLength = 256

// Document is the document aggregate: an identifier plus a free-form
// attribute map. Attrs holds the internal representation, including any
// synthetic token attributes once the document has been indexed.
type Document struct {
	id    string
	attrs map[string]any
}

// New validates and creates a Document.
func New(id string, attrs map[string]any) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required: %w", domain.ErrInvalidArgument)
	}
	if len(id) > MaxIDLength {
		return Document{}, fmt.Errorf("document ID too long (max %d): %w", MaxIDLength, domain.ErrInvalidArgument)
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf(
			"document ID must be alphanumeric with underscores and hyphens: %w", domain.ErrInvalidArgument,
		)
	}
	if attrs == nil {
		attrs = map[string]any{}
	}
	return Document{id: id, attrs: attrs}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(id string, attrs map[string]any) Document {
	return Document{id: id, attrs: attrs}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Attrs returns the internal attribute map, synthetic attributes included.
func (d *Document) Attrs() map[string]any { return d.attrs }

// External returns the externally consumable attribute view with every
// synthetic token attribute stripped.
func (d *Document) External() map[string]any { return fuzzy.Strip(d.attrs) }

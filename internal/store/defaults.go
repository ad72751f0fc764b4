package store

import (
	"fmt"
	"sync"

	"github.com/localnerve/vortex-console/data"
	"github.com/localnerve/vortex-console/internal/models"
)

var defaultDocument = sync.OnceValues(func() (*models.Document, error) {
	d, err := decode(data.DefaultDocument)
	if err != nil {
		return nil, fmt.Errorf("invalid embedded default document: %w", err)
	}
	if !d.hasUsers || !d.hasCatalog {
		return nil, fmt.Errorf("embedded default document is incomplete")
	}
	if len(d.locked) > 0 {
		return nil, fmt.Errorf("embedded default document has unusable passwords: %v", d.locked)
	}
	doc := d.doc
	for i := range doc.Sales {
		if doc.Sales[i].Expiry == "" {
			doc.Sales[i].Expiry = models.ExpiryFor(doc.Sales[i].Date)
		}
	}
	doc.Version = models.SchemaVersion
	return doc, nil
})

// DefaultDocument returns a fresh copy of the built-in starting document.
func DefaultDocument() (*models.Document, error) {
	doc, err := defaultDocument()
	if err != nil {
		return nil, err
	}
	return doc.Clone(), nil
}

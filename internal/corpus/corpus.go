// Package corpus loads and holds the fixed set of line-numbered documents
// that claims are verified against. Documents are immutable once loaded.
package corpus

import (
	"sort"

	"github.com/ppiankov/veripack/internal/model"
)

// Corpus is the immutable document set for one run
type Corpus struct {
	docs map[string]model.Document
	ids  []string // Sorted, for deterministic iteration
}

// New builds a corpus from a document slice. Duplicate ids keep the last
// document seen; loaders guarantee uniqueness by construction (one file
// per id).
func New(docs []model.Document) *Corpus {
	c := &Corpus{docs: make(map[string]model.Document, len(docs))}
	for _, d := range docs {
		if _, seen := c.docs[d.ID]; !seen {
			c.ids = append(c.ids, d.ID)
		}
		c.docs[d.ID] = d
	}
	sort.Strings(c.ids)
	return c
}

// Document returns the document with the given id
func (c *Corpus) Document(id string) (model.Document, bool) {
	d, ok := c.docs[id]
	return d, ok
}

// Documents returns all documents in ascending id order
func (c *Corpus) Documents() []model.Document {
	out := make([]model.Document, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.docs[id])
	}
	return out
}

// Len returns the number of documents
func (c *Corpus) Len() int {
	return len(c.ids)
}

// TotalLines returns the number of lines across all documents
func (c *Corpus) TotalLines() int {
	total := 0
	for _, d := range c.docs {
		total += len(d.Lines)
	}
	return total
}

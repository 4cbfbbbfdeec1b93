// Package cite maps ranked candidates back to exact line ranges and
// verbatim snippets in the source documents.
package cite

import (
	"strings"

	"github.com/ppiankov/veripack/internal/corpus"
	"github.com/ppiankov/veripack/internal/errors"
	"github.com/ppiankov/veripack/internal/model"
)

// Resolver reconstructs verbatim snippets from stored document lines
type Resolver struct {
	corpus *corpus.Corpus
}

// NewResolver creates a resolver over the given corpus
func NewResolver(c *corpus.Corpus) *Resolver {
	return &Resolver{corpus: c}
}

// Resolve looks up the exact stored lines for the document and span and
// joins their text verbatim with newlines. The snippet is never
// synthesized or paraphrased. An unknown document or a span outside the
// document's line range is an internal-consistency fault: the ranker only
// returns spans it produced from the same index, so the NotFound error is
// propagated, never silently truncated.
func (r *Resolver) Resolve(docID string, span model.Span) (model.Citation, error) {
	doc, ok := r.corpus.Document(docID)
	if !ok {
		return model.Citation{}, errors.NewNotFoundError(docID, span.Location())
	}
	if span.Start > span.End {
		return model.Citation{}, errors.NewNotFoundError(docID, span.Location())
	}

	var parts []string
	for _, line := range doc.Lines {
		if line.Number >= span.Start && line.Number <= span.End {
			parts = append(parts, line.Text)
		}
	}

	// Line numbers are contiguous, so an exact range resolves to exactly
	// End-Start+1 lines. Anything else means the span is out of bounds.
	if len(parts) != span.End-span.Start+1 {
		return model.Citation{}, errors.NewNotFoundError(docID, span.Location())
	}

	return model.Citation{
		DocID:    docID,
		Location: span.Location(),
		Snippet:  strings.Join(parts, "\n"),
	}, nil
}

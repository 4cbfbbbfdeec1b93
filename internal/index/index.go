// Package index builds the ranking index over a corpus: one indexed unit
// per line (or per fixed-size line window) with the term statistics BM25
// needs. Built once at run start, read-only afterwards.
package index

import (
	"strings"

	"github.com/ppiankov/veripack/internal/corpus"
	"github.com/ppiankov/veripack/internal/errors"
	"github.com/ppiankov/veripack/internal/model"
	"github.com/ppiankov/veripack/internal/tokenizer"
)

// Unit is the atomic entity the ranker scores: a single line or a window
// of consecutive lines within one document.
type Unit struct {
	DocID  string
	Span   model.Span
	Terms  map[string]int // Term -> frequency within the unit
	Length int            // Total token count
}

// Index holds the per-unit term statistics derived from a corpus
type Index struct {
	units  []Unit
	df     map[string]int // Term -> number of units containing it
	avgLen float64
	corpus *corpus.Corpus
}

// Build constructs the index over every document of the corpus. Units are
// emitted in document-id then line order, which fixes the tie-breaking
// order downstream. windowSize <= 1 indexes single lines; larger values
// slide a window of that many consecutive lines (stride 1) so evidence
// spanning adjacent lines stays in one unit.
func Build(c *corpus.Corpus, windowSize int) (*Index, error) {
	if c == nil || c.Len() == 0 {
		return nil, errors.NewConfigurationError("corpus is empty")
	}
	if windowSize < 1 {
		windowSize = 1
	}

	idx := &Index{
		df:     make(map[string]int),
		corpus: c,
	}

	totalLen := 0
	for _, doc := range c.Documents() {
		for _, unit := range buildUnits(doc, windowSize) {
			totalLen += unit.Length
			for term := range unit.Terms {
				idx.df[term]++
			}
			idx.units = append(idx.units, unit)
		}
	}

	if len(idx.units) == 0 {
		return nil, errors.NewConfigurationError("corpus has no indexable lines")
	}
	idx.avgLen = float64(totalLen) / float64(len(idx.units))

	return idx, nil
}

func buildUnits(doc model.Document, windowSize int) []Unit {
	n := len(doc.Lines)
	if n == 0 {
		return nil
	}

	// A document shorter than the window becomes a single unit.
	last := n - windowSize
	if last < 0 {
		last = 0
	}

	units := make([]Unit, 0, last+1)
	for start := 0; start <= last; start++ {
		end := start + windowSize - 1
		if end >= n {
			end = n - 1
		}

		var text strings.Builder
		for i := start; i <= end; i++ {
			if i > start {
				text.WriteByte(' ')
			}
			text.WriteString(doc.Lines[i].Text)
		}

		terms := make(map[string]int)
		length := 0
		for _, tok := range tokenizer.Tokenize(text.String()) {
			terms[tok]++
			length++
		}

		units = append(units, Unit{
			DocID:  doc.ID,
			Span:   model.Span{Start: doc.Lines[start].Number, End: doc.Lines[end].Number},
			Terms:  terms,
			Length: length,
		})
	}
	return units
}

// Units returns all indexed units in build order
func (idx *Index) Units() []Unit { return idx.units }

// N returns the total number of indexed units
func (idx *Index) N() int { return len(idx.units) }

// DF returns the number of units containing the term
func (idx *Index) DF(term string) int { return idx.df[term] }

// AvgLen returns the average unit length in tokens
func (idx *Index) AvgLen() float64 { return idx.avgLen }

// Corpus returns the corpus the index was built from
func (idx *Index) Corpus() *corpus.Corpus { return idx.corpus }

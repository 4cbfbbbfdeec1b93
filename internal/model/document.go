package model

import "fmt"

// Line is a single numbered line of a corpus document
type Line struct {
	Number int    `json:"number"` // 1-based, contiguous within the document
	Text   string `json:"text"`
}

// Document is an immutable line-numbered corpus document
type Document struct {
	ID    string `json:"id"`    // Unique within the corpus (e.g., "doc01")
	Lines []Line `json:"lines"` // Ordered by line number
}

// FirstLine returns the lowest line number in the document (0 if empty)
func (d Document) FirstLine() int {
	if len(d.Lines) == 0 {
		return 0
	}
	return d.Lines[0].Number
}

// LastLine returns the highest line number in the document (0 if empty)
func (d Document) LastLine() int {
	if len(d.Lines) == 0 {
		return 0
	}
	return d.Lines[len(d.Lines)-1].Number
}

// Span is a contiguous, inclusive line range within one document
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Location renders the span using the corpus line-number convention:
// "L003" for a single line, "L001-L004" for a range. Numbers are
// zero-padded to three digits.
func (s Span) Location() string {
	if s.Start == s.End {
		return fmt.Sprintf("L%03d", s.Start)
	}
	return fmt.Sprintf("L%03d-L%03d", s.Start, s.End)
}

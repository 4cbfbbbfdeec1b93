package cite

import (
	gerrors "errors"
	"testing"

	"github.com/ppiankov/veripack/internal/corpus"
	"github.com/ppiankov/veripack/internal/errors"
	"github.com/ppiankov/veripack/internal/model"
)

func testResolver() *Resolver {
	return NewResolver(corpus.New([]model.Document{
		{
			ID: "doc01",
			Lines: []model.Line{
				{Number: 1, Text: "The review period is 3 working days."},
				{Number: 2, Text: "Do not cite headnotes."},
				{Number: 3, Text: "All submissions must include a case number."},
			},
		},
	}))
}

func TestResolve_SingleLine(t *testing.T) {
	c, err := testResolver().Resolve("doc01", model.Span{Start: 2, End: 2})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if c.Location != "L002" {
		t.Errorf("expected L002, got %s", c.Location)
	}
	if c.Snippet != "Do not cite headnotes." {
		t.Errorf("snippet must be the stored line verbatim, got %q", c.Snippet)
	}
}

func TestResolve_Range(t *testing.T) {
	c, err := testResolver().Resolve("doc01", model.Span{Start: 1, End: 3})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if c.Location != "L001-L003" {
		t.Errorf("expected L001-L003, got %s", c.Location)
	}
	want := "The review period is 3 working days.\nDo not cite headnotes.\nAll submissions must include a case number."
	if c.Snippet != want {
		t.Errorf("range snippet mismatch:\n%q\n%q", c.Snippet, want)
	}
}

func TestResolve_NotFound(t *testing.T) {
	r := testResolver()

	cases := []struct {
		name  string
		docID string
		span  model.Span
	}{
		{"unknown document", "doc99", model.Span{Start: 1, End: 1}},
		{"line past end", "doc01", model.Span{Start: 4, End: 4}},
		{"range past end", "doc01", model.Span{Start: 2, End: 5}},
		{"inverted span", "doc01", model.Span{Start: 3, End: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Resolve(tc.docID, tc.span)
			if err == nil {
				t.Fatal("expected error")
			}
			if !gerrors.Is(err, errors.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

package rank

import (
	gerrors "errors"
	"reflect"
	"testing"
	"time"

	"github.com/ppiankov/veripack/internal/cache"
	"github.com/ppiankov/veripack/internal/corpus"
	"github.com/ppiankov/veripack/internal/errors"
	"github.com/ppiankov/veripack/internal/index"
	"github.com/ppiankov/veripack/internal/model"
)

func buildTestIndex(t *testing.T, docs []model.Document) *index.Index {
	t.Helper()
	idx, err := index.Build(corpus.New(docs), 1)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return idx
}

func rulesCorpus() []model.Document {
	return []model.Document{
		{
			ID: "doc01",
			Lines: []model.Line{
				{Number: 1, Text: "The review period is 3 working days."},
				{Number: 2, Text: "Do not cite headnotes in briefs."},
				{Number: 3, Text: "All submissions must include a case number."},
			},
		},
		{
			ID: "doc02",
			Lines: []model.Line{
				{Number: 1, Text: "Hearing dates are assigned by the clerk."},
				{Number: 2, Text: "Filing fees are due at submission."},
			},
		},
	}
}

func TestRank_TopHit(t *testing.T) {
	r := NewRanker(buildTestIndex(t, rulesCorpus()), model.RetrievalConfig{K1: 1.2, B: 0.75})

	cands, err := r.Rank("cite headnotes", 5)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(cands) == 0 {
		t.Fatal("expected at least one candidate")
	}

	top := cands[0]
	if top.DocID != "doc01" || top.Span.Start != 2 {
		t.Errorf("expected doc01 L002 on top, got %s %s", top.DocID, top.Span.Location())
	}
	if top.Snippet != "Do not cite headnotes in briefs." {
		t.Errorf("snippet is not the verbatim line: %q", top.Snippet)
	}
	if top.Score <= 0 {
		t.Errorf("expected positive score, got %f", top.Score)
	}
}

func TestRank_ZeroScoreExcluded(t *testing.T) {
	r := NewRanker(buildTestIndex(t, rulesCorpus()), model.RetrievalConfig{})

	// No corpus line mentions arbitration; empty result, not an error.
	cands, err := r.Rank("arbitration clause", 5)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(cands) != 0 {
		t.Errorf("expected no candidates, got %d", len(cands))
	}
}

func TestRank_TopKCaps(t *testing.T) {
	r := NewRanker(buildTestIndex(t, rulesCorpus()), model.RetrievalConfig{})

	// These terms hit lines in both documents; cap at 1.
	cands, err := r.Rank("the case clerk", 1)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("expected exactly 1 candidate, got %d", len(cands))
	}
}

func TestRank_Deterministic(t *testing.T) {
	r := NewRanker(buildTestIndex(t, rulesCorpus()), model.RetrievalConfig{})

	a, err := r.Rank("case number submissions", 10)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	b, err := r.Rank("case number submissions", 10)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated ranking differs:\n%+v\n%+v", a, b)
	}
}

func TestRank_TieBreakByDocID(t *testing.T) {
	// Two documents with the same single line produce identical scores;
	// the lower document id must come first. The third document keeps
	// df below N so the shared terms carry positive idf — with every
	// unit containing a term, idf = log(1) = 0 and nothing would score.
	docs := []model.Document{
		{ID: "zeta", Lines: []model.Line{{Number: 1, Text: "quorum requires five members"}}},
		{ID: "alpha", Lines: []model.Line{{Number: 1, Text: "quorum requires five members"}}},
		{ID: "filler", Lines: []model.Line{{Number: 1, Text: "courtroom decorum guidelines apply"}}},
	}
	r := NewRanker(buildTestIndex(t, docs), model.RetrievalConfig{})

	cands, err := r.Rank("quorum members", 10)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if cands[0].DocID != "alpha" || cands[1].DocID != "zeta" {
		t.Errorf("tie not broken by doc id: %s, %s", cands[0].DocID, cands[1].DocID)
	}
	if cands[0].Score != cands[1].Score {
		t.Errorf("identical lines should score equally: %f vs %f", cands[0].Score, cands[1].Score)
	}
}

func TestRank_EmptyQuery(t *testing.T) {
	r := NewRanker(buildTestIndex(t, rulesCorpus()), model.RetrievalConfig{})

	_, err := r.Rank("...", 5)
	if !gerrors.Is(err, errors.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for termless query, got %v", err)
	}

	_, err = r.Rank("valid query", 0)
	if !gerrors.Is(err, errors.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for top_k=0, got %v", err)
	}
}

func TestRank_CacheParity(t *testing.T) {
	idx := buildTestIndex(t, rulesCorpus())
	plain := NewRanker(idx, model.RetrievalConfig{})
	cached := NewRanker(idx, model.RetrievalConfig{}).
		WithCache(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	want, err := plain.Rank("review period working days", 5)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	// First call populates the cache, second call must serve from it
	// with identical results.
	for i := 0; i < 2; i++ {
		got, err := cached.Rank("review period working days", 5)
		if err != nil {
			t.Fatalf("cached Rank failed: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("call %d: cached result differs:\n%+v\n%+v", i, got, want)
		}
	}
}

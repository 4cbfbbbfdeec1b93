package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ppiankov/veripack/internal/corpus"
	"github.com/ppiankov/veripack/internal/model"
)

func testCorpus() *corpus.Corpus {
	return corpus.New([]model.Document{
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
			},
		},
	})
}

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	return cfg
}

func TestBuildPack(t *testing.T) {
	p, err := New(testCorpus(), testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	q := model.Question{QID: "q001", Text: "What is the review period?"}
	claims := []string{
		"The review period is 7 working days.",
		"Submissions must include a case number.",
		"Attorneys may cite headnotes in briefs.",
	}

	pack, err := p.BuildPack(context.Background(), q, claims)
	if err != nil {
		t.Fatalf("BuildPack failed: %v", err)
	}

	if pack.QID != "q001" {
		t.Errorf("expected qid q001, got %s", pack.QID)
	}
	if len(pack.Claims) != 3 {
		t.Fatalf("expected 3 verdicts, got %d", len(pack.Claims))
	}

	wantLabels := []model.Label{
		model.LabelNotSupported, // Figure disagrees with the corpus
		model.LabelSupported,
		model.LabelNotSupported, // Evidence is prohibitive
	}
	for i, want := range wantLabels {
		if pack.Claims[i].Label != want {
			t.Errorf("claim %d: expected %s, got %s", i, want, pack.Claims[i].Label)
		}
	}

	// Only the supported claim feeds the answer.
	if pack.Answer != "Submissions must include a case number." {
		t.Errorf("unexpected answer: %q", pack.Answer)
	}

	// Every verdict's citation must appear in the merged log.
	logged := make(map[string]bool)
	for _, c := range pack.RetrievalLog.Candidates {
		logged[c.DocID+"/"+c.Location] = true
	}
	for _, v := range pack.Claims {
		for _, e := range v.Evidence {
			if !logged[e.DocID+"/"+e.Location] {
				t.Errorf("citation %s %s missing from retrieval log", e.DocID, e.Location)
			}
		}
	}
	if len(pack.RetrievalLog.Candidates) > pack.RetrievalLog.TopK {
		t.Errorf("retrieval log exceeds top_k: %d > %d",
			len(pack.RetrievalLog.Candidates), pack.RetrievalLog.TopK)
	}
}

func TestBuildPack_NoSupport(t *testing.T) {
	p, err := New(testCorpus(), testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	pack, err := p.BuildPack(context.Background(),
		model.Question{QID: "q002", Text: "What approvals are required?"},
		[]string{"The court requires written approval for extensions."})
	if err != nil {
		t.Fatalf("BuildPack failed: %v", err)
	}

	if pack.Claims[0].Label != model.LabelInsufficient {
		t.Errorf("expected INSUFFICIENT, got %s", pack.Claims[0].Label)
	}
	if pack.Answer != InsufficientAnswer {
		t.Errorf("expected the fixed insufficient answer, got %q", pack.Answer)
	}
}

func TestRun_OrdersByQID(t *testing.T) {
	p, err := New(testCorpus(), testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	questions := []model.Question{
		{QID: "q002", Text: "Who assigns hearing dates?"},
		{QID: "q001", Text: "What is the review period?"},
	}
	claims := map[string][]string{
		"q001": {"The review period is 3 working days."},
		"q002": {"Hearing dates are assigned by the clerk."},
	}

	packs, err := p.Run(context.Background(), questions, claims)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(packs) != 2 {
		t.Fatalf("expected 2 packs, got %d", len(packs))
	}
	if packs[0].QID != "q001" || packs[1].QID != "q002" {
		t.Errorf("packs not ordered by qid: %s, %s", packs[0].QID, packs[1].QID)
	}
}

func TestRun_Deterministic(t *testing.T) {
	questions := []model.Question{{QID: "q001", Text: "What is the review period?"}}
	claims := map[string][]string{
		"q001": {"The review period is 7 working days.", "Submissions must include a case number."},
	}

	run := func() []model.Pack {
		p, err := New(testCorpus(), testConfig())
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		packs, err := p.Run(context.Background(), questions, claims)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		return packs
	}

	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Errorf("repeated runs differ:\n%+v\n%+v", a, b)
	}
}

func TestRun_TopKDoesNotChangeVerdicts(t *testing.T) {
	questions := []model.Question{{QID: "q001", Text: "What is the review period?"}}
	claims := map[string][]string{
		"q001": {"The review period is 7 working days.", "Attorneys may cite headnotes in briefs."},
	}

	labels := func(topK int) []model.Label {
		cfg := testConfig()
		cfg.Retrieval.TopK = topK
		p, err := New(testCorpus(), cfg)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		packs, err := p.Run(context.Background(), questions, claims)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		out := make([]model.Label, 0, len(packs[0].Claims))
		for _, v := range packs[0].Claims {
			out = append(out, v.Label)
		}
		return out
	}

	// Widening retrieval beyond the inspection window must not flip labels.
	if a, b := labels(5), labels(10); !reflect.DeepEqual(a, b) {
		t.Errorf("verdicts changed with top_k: %v vs %v", a, b)
	}
}

func TestRun_Cancelled(t *testing.T) {
	p, err := New(testCorpus(), testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Run(ctx, []model.Question{{QID: "q001", Text: "What is the review period?"}}, nil)
	if err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestJSONLRoundTrip(t *testing.T) {
	dir := t.TempDir()

	qPath := filepath.Join(dir, "questions.jsonl")
	qContent := `{"qid": "q001", "question": "What is the review period?"}

{"qid": "q002", "question": "Who assigns hearing dates?"}
`
	if err := os.WriteFile(qPath, []byte(qContent), 0o644); err != nil {
		t.Fatalf("write questions: %v", err)
	}
	questions, err := ReadQuestions(qPath)
	if err != nil {
		t.Fatalf("ReadQuestions failed: %v", err)
	}
	if len(questions) != 2 || questions[0].QID != "q001" || questions[1].Text != "Who assigns hearing dates?" {
		t.Errorf("unexpected questions: %+v", questions)
	}

	cPath := filepath.Join(dir, "claims.jsonl")
	cContent := `{"qid": "q001", "claims": ["The review period is 3 working days."]}
`
	if err := os.WriteFile(cPath, []byte(cContent), 0o644); err != nil {
		t.Fatalf("write claims: %v", err)
	}
	claims, err := ReadClaims(cPath)
	if err != nil {
		t.Fatalf("ReadClaims failed: %v", err)
	}
	if len(claims["q001"]) != 1 {
		t.Errorf("unexpected claims: %+v", claims)
	}

	// Generate real packs and round-trip them through JSONL.
	p, err := New(testCorpus(), testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	packs, err := p.Run(context.Background(), questions, map[string][]string{
		"q001": {"The review period is 3 working days."},
		"q002": {"Hearing dates are assigned by the clerk."},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	pPath := filepath.Join(dir, "packs.jsonl")
	if err := WritePacks(pPath, packs); err != nil {
		t.Fatalf("WritePacks failed: %v", err)
	}
	read, err := ReadPacks(pPath)
	if err != nil {
		t.Fatalf("ReadPacks failed: %v", err)
	}
	if !reflect.DeepEqual(read, packs) {
		t.Errorf("packs did not round-trip:\n%+v\n%+v", read, packs)
	}

	if _, err := ReadQuestions(filepath.Join(dir, "absent.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}
}

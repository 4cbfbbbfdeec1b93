package llm

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ppiankov/veripack/internal/model"
)

// fakeProvider returns a canned answer and records the last request.
type fakeProvider struct {
	answer  string
	err     error
	lastReq AnswerRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Answer(_ context.Context, req AnswerRequest) (*AnswerResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &AnswerResponse{Answer: f.answer, Model: "fake-1"}, nil
}

func (f *fakeProvider) IsAvailable(_ context.Context) bool { return true }

func supportedVerdicts() []model.Verdict {
	return []model.Verdict{
		{
			Claim: "Submissions must include a case number.",
			Label: model.LabelSupported,
			Evidence: []model.Citation{
				{DocID: "doc01", Location: "L003", Snippet: "All submissions must include a case number."},
			},
		},
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil || p != nil {
		t.Errorf("empty provider should disable synthesis, got %v / %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "delphic"}); err == nil {
		t.Error("expected error for unknown provider")
	}

	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("expected error for openai without API key")
	}
}

func TestNewAnswerer_Disabled(t *testing.T) {
	a, err := NewAnswerer(Config{})
	if err != nil {
		t.Fatalf("NewAnswerer failed: %v", err)
	}
	if a != nil {
		t.Fatal("expected nil answerer when no provider is configured")
	}
	// nil receiver is safe.
	if a.IsEnabled() {
		t.Error("nil answerer must report disabled")
	}
	if _, err := a.GenerateAnswer(context.Background(), "q", supportedVerdicts()); err == nil {
		t.Error("expected error from disabled answerer")
	}
}

func TestGenerateAnswer(t *testing.T) {
	fake := &fakeProvider{answer: "Submissions must include a case number."}
	a := &Answerer{provider: fake, config: Config{MaxTokens: 200}}

	got, err := a.GenerateAnswer(context.Background(), "What must submissions include?", supportedVerdicts())
	if err != nil {
		t.Fatalf("GenerateAnswer failed: %v", err)
	}
	if got != fake.answer {
		t.Errorf("unexpected answer: %q", got)
	}
	if fake.lastReq.MaxTokens != 200 {
		t.Errorf("request did not carry MaxTokens, got %d", fake.lastReq.MaxTokens)
	}
	if len(fake.lastReq.Supported) != 1 {
		t.Errorf("request must carry only supported verdicts, got %d", len(fake.lastReq.Supported))
	}
}

func TestGenerateAnswer_Errors(t *testing.T) {
	a := &Answerer{provider: &fakeProvider{answer: "x"}, config: Config{}}
	if _, err := a.GenerateAnswer(context.Background(), "q", nil); err == nil {
		t.Error("expected error with no supported claims")
	}

	a = &Answerer{provider: &fakeProvider{err: fmt.Errorf("upstream down")}, config: Config{}}
	if _, err := a.GenerateAnswer(context.Background(), "q", supportedVerdicts()); err == nil {
		t.Error("expected provider error to propagate")
	}

	a = &Answerer{provider: &fakeProvider{answer: ""}, config: Config{}}
	if _, err := a.GenerateAnswer(context.Background(), "q", supportedVerdicts()); err == nil {
		t.Error("expected error for empty answer")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(AnswerRequest{
		Question:  "What must submissions include?",
		Supported: supportedVerdicts(),
	})

	for _, want := range []string{
		"What must submissions include?",
		"- Submissions must include a case number.",
		"(evidence: doc01 L003)",
		"ONLY restate the supported claims",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

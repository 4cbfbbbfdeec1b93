package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/veripack/internal/model"
)

// Answerer wraps a provider for pack answer synthesis. A nil Answerer (or
// one with a nil provider) means synthesis is disabled and callers use
// the deterministic fallback.
type Answerer struct {
	provider Provider
	config   Config
}

// NewAnswerer creates an answerer from configuration. Returns nil (no
// error) when no provider is configured.
func NewAnswerer(config Config) (*Answerer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return &Answerer{provider: provider, config: config}, nil
}

// IsEnabled reports whether synthesis is active
func (a *Answerer) IsEnabled() bool {
	return a != nil && a.provider != nil
}

// GenerateAnswer synthesizes an answer from the SUPPORTED verdicts only.
// Verdicts are produced before this runs and are never modified here.
func (a *Answerer) GenerateAnswer(ctx context.Context, question string, supported []model.Verdict) (string, error) {
	if !a.IsEnabled() {
		return "", fmt.Errorf("answer synthesis is disabled")
	}
	if len(supported) == 0 {
		return "", fmt.Errorf("no supported claims to answer from")
	}

	resp, err := a.provider.Answer(ctx, AnswerRequest{
		Question:  question,
		Supported: supported,
		Model:     a.config.Model,
		MaxTokens: a.config.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	if resp.Answer == "" {
		return "", fmt.Errorf("%s returned an empty answer", a.provider.Name())
	}
	return resp.Answer, nil
}

// Package llm provides the optional answer synthesizer. It operates only
// on claims the verdict engine already marked SUPPORTED and never affects
// verdicts; when disabled or failing, the pipeline falls back to a
// deterministic join of the supported claim texts.
package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/veripack/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Answer synthesizes an answer from supported claims in strict
	// evidence mode
	Answer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// AnswerRequest contains the input for answer synthesis
type AnswerRequest struct {
	// Question is the original question text
	Question string

	// Supported is the STRICT allowlist of material the LLM may restate:
	// only claims the verdict engine marked SUPPORTED, with their citations
	Supported []model.Verdict

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// AnswerResponse contains the synthesized answer
type AnswerResponse struct {
	Answer     string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	Provider  string // "openai", "anthropic", "ollama", ""
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int
}

// DefaultConfig returns sensible defaults (disabled)
func DefaultConfig() Config {
	return Config{
		Timeout:   30,
		MaxTokens: 500,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}

// BuildPrompt constructs the default answer-synthesis prompt with strict
// evidence mode
func BuildPrompt(req AnswerRequest) string {
	prompt := fmt.Sprintf(`You are writing the answer section of a claim verification pack.

CRITICAL RULES:
1. You may ONLY restate the supported claims listed below. Do not add,
   infer, or speculate beyond them.
2. Do not cite any document or line range other than the ones listed.
3. Keep the answer to 1-3 sentences.
4. Never assert anything the supported claims do not say.

Question: %s

Supported claims:
`, req.Question)

	for _, v := range req.Supported {
		prompt += fmt.Sprintf("- %s\n", v.Claim)
		for _, e := range v.Evidence {
			prompt += fmt.Sprintf("  (evidence: %s %s)\n", e.DocID, e.Location)
		}
	}

	prompt += "\nWrite the answer now."
	return prompt
}

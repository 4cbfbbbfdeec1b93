package model

import "time"

// Config is the complete veripack configuration. Defaults are documented
// on DefaultConfig; every value can be overridden via config file,
// VERIPACK_* environment variables, or CLI flags.
type Config struct {
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Verify      VerifyConfig      `yaml:"verify"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
	LLM         LLMConfig         `yaml:"llm"`
}

// RetrievalConfig controls the corpus index and the BM25 ranker
type RetrievalConfig struct {
	TopK       int     `yaml:"top_k"`       // Candidates returned per query
	WindowSize int     `yaml:"window_size"` // Lines per indexed unit (1 = single lines)
	K1         float64 `yaml:"k1"`          // Term-frequency saturation
	B          float64 `yaml:"b"`           // Length-normalization strength
}

// VerifyConfig controls the verdict engine. The contradiction threshold is
// deliberately lower than the support threshold: a weak topical match plus
// a clear polarity conflict is strong contradiction evidence, while a weak
// match alone is not grounds for an affirmative verdict.
type VerifyConfig struct {
	SupportThreshold       float64 `yaml:"support_threshold"`
	ContradictionThreshold float64 `yaml:"contradiction_threshold"`
	MaxInspect             int     `yaml:"max_inspect"` // Top candidates inspected per claim
	RulesPath              string  `yaml:"rules_path"`  // Optional polarity rule table (YAML)
}

// CacheConfig controls the ranked-candidate cache. Ranking is a pure
// function of (index, query, top_k), so caching never changes output.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"` // Disk layer location; memory-only when empty
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig controls corpus loading parallelism. Ranking and
// verification themselves are strictly sequential.
type ConcurrencyConfig struct {
	LoaderWorkers int `yaml:"loader_workers"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// LLMConfig configures the optional answer synthesizer. It never affects
// verdicts; when disabled or failing, answers fall back to joining the
// supported claim texts.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama, "" = disabled
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // From environment only, never persisted
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout_seconds"`
	MaxTokens int    `yaml:"max_tokens"`
}

// DefaultConfig returns the documented defaults
func DefaultConfig() *Config {
	return &Config{
		Retrieval: RetrievalConfig{
			TopK:       10,
			WindowSize: 1,
			K1:         1.2,
			B:          0.75,
		},
		Verify: VerifyConfig{
			SupportThreshold:       0.4,
			ContradictionThreshold: 0.3,
			MaxInspect:             3,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			LoaderWorkers: 4,
		},
		Output: OutputConfig{},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 500,
		},
	}
}

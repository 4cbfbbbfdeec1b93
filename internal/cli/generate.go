package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veripack/internal/corpus"
	"github.com/ppiankov/veripack/internal/model"
	"github.com/ppiankov/veripack/internal/pipeline"
	"github.com/ppiankov/veripack/internal/report"
)

var (
	docsDir       string
	questionsPath string
	claimsPath    string
	outDir        string

	topK          int
	windowSize    int
	supportThresh float64
	contraThresh  float64
	maxInspect    int
	rulesPath     string

	loaderWorkers int
	runTimeout    time.Duration
	noCache       bool
	cacheDir      string

	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate verification packs for questions and claims",
	Long: `Generate verifies every claim against the document corpus and writes
one verification pack per question to <out>/packs.jsonl.

Each pack contains the synthesized answer, a verdict per claim
(SUPPORTED, NOT_SUPPORTED, INSUFFICIENT) with pinpoint citations, and
the retrieval log of candidates considered.

Example:
  veripack generate --docs ./docs --questions questions.jsonl --claims claims.jsonl --out ./outputs
  veripack generate --docs ./docs --questions q.jsonl --claims c.jsonl --out ./out --top-k 20 --window 2
  veripack generate --docs ./docs --questions q.jsonl --claims c.jsonl --out ./out --llm --llm-provider openai`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Input/output flags
	generateCmd.Flags().StringVar(&docsDir, "docs", "", "path to documents directory (required)")
	generateCmd.Flags().StringVar(&questionsPath, "questions", "", "path to questions.jsonl (required)")
	generateCmd.Flags().StringVar(&claimsPath, "claims", "", "path to claims.jsonl (required)")
	generateCmd.Flags().StringVar(&outDir, "out", "./outputs", "output directory")
	_ = generateCmd.MarkFlagRequired("docs")
	_ = generateCmd.MarkFlagRequired("questions")
	_ = generateCmd.MarkFlagRequired("claims")

	// Retrieval flags
	generateCmd.Flags().IntVar(&topK, "top-k", 10, "candidates retrieved per query")
	generateCmd.Flags().IntVar(&windowSize, "window", 1, "lines per indexed unit (1 = single lines)")

	// Verdict flags
	generateCmd.Flags().Float64Var(&supportThresh, "support-threshold", 0.4, "minimum claim-term overlap for support")
	generateCmd.Flags().Float64Var(&contraThresh, "contradiction-threshold", 0.3, "minimum overlap for contradiction")
	generateCmd.Flags().IntVar(&maxInspect, "max-inspect", 3, "top candidates inspected per claim")
	generateCmd.Flags().StringVar(&rulesPath, "rules", "", "polarity rule table YAML (default: built-in)")

	// Run flags
	generateCmd.Flags().IntVar(&loaderWorkers, "workers", 4, "concurrent corpus loader workers")
	generateCmd.Flags().DurationVar(&runTimeout, "timeout", 10*time.Minute, "overall run timeout")
	generateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the ranked-candidate cache")
	generateCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist the candidate cache to this directory")

	// LLM flags
	generateCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM answer synthesis (never affects verdicts)")
	generateCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	generateCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// applyFlagOverrides overlays explicitly passed flags onto cfg. Flags
// the user did not set keep the config-file/env/default value, so the
// documented hierarchy (flags > env > file > defaults) holds.
func applyFlagOverrides(cfg *model.Config, cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("top-k") {
		cfg.Retrieval.TopK = topK
	}
	if flags.Changed("window") {
		cfg.Retrieval.WindowSize = windowSize
	}
	if flags.Changed("support-threshold") {
		cfg.Verify.SupportThreshold = supportThresh
	}
	if flags.Changed("contradiction-threshold") {
		cfg.Verify.ContradictionThreshold = contraThresh
	}
	if flags.Changed("max-inspect") {
		cfg.Verify.MaxInspect = maxInspect
	}
	if flags.Changed("rules") {
		cfg.Verify.RulesPath = rulesPath
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("cache-dir") {
		cfg.Cache.Dir = cacheDir
	}
	if flags.Changed("workers") {
		cfg.Concurrency.LoaderWorkers = loaderWorkers
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if flags.Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	// Defaults overlaid with config file and VERIPACK_* environment,
	// then with explicitly passed flags
	cfg := configFromViper()
	applyFlagOverrides(cfg, cmd)

	// The LLM layer stays off unless --llm is passed, even when a
	// provider is configured in the file; API keys come from the
	// environment only.
	if !llmEnabled {
		cfg.LLM.Provider = ""
	} else {
		if cfg.LLM.Provider == "" {
			cfg.LLM.Provider = llmProvider
		}
		if cfg.LLM.Model == "" {
			cfg.LLM.Model = llmModel
		}

		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	// Load corpus
	c, err := corpus.LoadDir(docsDir, cfg.Concurrency.LoaderWorkers)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d documents, %d lines total\n", c.Len(), c.TotalLines())
	}

	// Build pipeline (index is constructed once here)
	p, err := pipeline.New(c, cfg)
	if err != nil {
		return err
	}
	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Indexed %d units (window=%d)\n", p.Index().N(), cfg.Retrieval.WindowSize)
	}

	// Load questions and claims
	questions, err := pipeline.ReadQuestions(questionsPath)
	if err != nil {
		return err
	}
	claims, err := pipeline.ReadClaims(claimsPath)
	if err != nil {
		return err
	}

	// Generate packs
	packs, err := p.Run(ctx, questions, claims)
	if err != nil {
		return fmt.Errorf("generate packs: %w", err)
	}

	// Write output
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	outPath := filepath.Join(outDir, "packs.jsonl")
	if err := pipeline.WritePacks(outPath, packs); err != nil {
		return err
	}

	fmt.Printf("Complete! Output written to %s\n", outPath)
	fmt.Printf("Total packs: %d\n\n", len(packs))
	report.Evaluate(packs).Render(os.Stdout)

	return nil
}

// Package pipeline orchestrates a verification run: build the index once,
// then process each question and each of its claims strictly sequentially
// over the read-only index.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/veripack/internal/cache"
	"github.com/ppiankov/veripack/internal/corpus"
	"github.com/ppiankov/veripack/internal/index"
	"github.com/ppiankov/veripack/internal/llm"
	"github.com/ppiankov/veripack/internal/model"
	"github.com/ppiankov/veripack/internal/rank"
	"github.com/ppiankov/veripack/internal/retrieval"
	"github.com/ppiankov/veripack/internal/verify"
)

// InsufficientAnswer is the fixed answer when no claim is supported
const InsufficientAnswer = "Insufficient evidence to provide a definitive answer."

// Pipeline holds the components of one verification run
type Pipeline struct {
	corpus   *corpus.Corpus
	index    *index.Index
	ranker   *rank.Ranker
	engine   *verify.Engine
	logs     *retrieval.Builder
	answerer *llm.Answerer // nil when disabled
	config   *model.Config
}

// New builds a pipeline over the given corpus. The index is constructed
// here, once, and is read-only for the rest of the run.
func New(c *corpus.Corpus, cfg *model.Config) (*Pipeline, error) {
	idx, err := index.Build(c, cfg.Retrieval.WindowSize)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	ranker := rank.NewRanker(idx, cfg.Retrieval)
	if cfg.Cache.Enabled {
		ranker.WithCache(newCache(cfg.Cache), cfg.Cache.TTL)
	}

	var rules *verify.RuleTable
	if cfg.Verify.RulesPath != "" {
		rules, err = verify.LoadRuleTable(cfg.Verify.RulesPath)
		if err != nil {
			return nil, fmt.Errorf("load rule table: %w", err)
		}
	}

	var answerer *llm.Answerer
	if cfg.LLM.Provider != "" {
		answerer, err = llm.NewAnswerer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			// Synthesis is optional and never affects verdicts; warn and
			// fall back to the deterministic join.
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		}
	}

	return &Pipeline{
		corpus:   c,
		index:    idx,
		ranker:   ranker,
		engine:   verify.NewEngine(cfg.Verify, rules),
		logs:     retrieval.NewBuilder(cfg.Retrieval.TopK),
		answerer: answerer,
		config:   cfg,
	}, nil
}

// BuildPack verifies every claim of one question and assembles the output
// record: answer, claim verdicts, and the merged retrieval log.
func (p *Pipeline) BuildPack(ctx context.Context, q model.Question, claims []string) (*model.Pack, error) {
	topK := p.config.Retrieval.TopK

	// Question retrieval feeds answer synthesis only; its candidates are
	// not part of the pack's retrieval log.
	if _, err := p.ranker.Rank(q.Text, topK); err != nil {
		return nil, fmt.Errorf("rank question %s: %w", q.QID, err)
	}

	verdicts := make([]model.Verdict, 0, len(claims))
	claimLogs := make([]model.RetrievalLog, 0, len(claims))
	for i, claim := range claims {
		candidates, err := p.ranker.Rank(claim, topK)
		if err != nil {
			return nil, fmt.Errorf("rank claim %d of %s: %w", i+1, q.QID, err)
		}
		verdicts = append(verdicts, p.engine.Verify(claim, candidates))
		claimLogs = append(claimLogs, p.logs.Record(q.QID, candidates))
	}

	return &model.Pack{
		QID:          q.QID,
		Answer:       p.answer(ctx, q, verdicts),
		Claims:       verdicts,
		RetrievalLog: p.logs.Merge(claimLogs...),
	}, nil
}

// Run builds packs for all questions in ascending qid order
func (p *Pipeline) Run(ctx context.Context, questions []model.Question, claimsByQID map[string][]string) ([]model.Pack, error) {
	sorted := make([]model.Question, len(questions))
	copy(sorted, questions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].QID < sorted[j].QID })

	packs := make([]model.Pack, 0, len(sorted))
	for _, q := range sorted {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pack, err := p.BuildPack(ctx, q, claimsByQID[q.QID])
		if err != nil {
			return nil, err
		}
		packs = append(packs, *pack)
		if p.config.Output.Verbose {
			fmt.Fprintf(os.Stderr, "Generated pack for %s (%d claims)\n", q.QID, len(pack.Claims))
		}
	}
	return packs, nil
}

// answer synthesizes the pack answer from SUPPORTED verdicts. The LLM
// path is optional and its failure never fails the pack.
func (p *Pipeline) answer(ctx context.Context, q model.Question, verdicts []model.Verdict) string {
	var supported []model.Verdict
	for _, v := range verdicts {
		if v.Label == model.LabelSupported {
			supported = append(supported, v)
		}
	}
	if len(supported) == 0 {
		return InsufficientAnswer
	}

	if p.answerer.IsEnabled() {
		answer, err := p.answerer.GenerateAnswer(ctx, q.Text, supported)
		if err == nil {
			return answer
		}
		fmt.Fprintf(os.Stderr, "Warning: answer synthesis failed for %s: %v\n", q.QID, err)
	}

	texts := make([]string, 0, len(supported))
	for _, v := range supported {
		texts = append(texts, v.Claim)
	}
	return strings.Join(texts, "; ")
}

// Index exposes the built index for inspection (stats in verbose output)
func (p *Pipeline) Index() *index.Index {
	return p.index
}

func newCache(cfg model.CacheConfig) cache.Cache {
	if cfg.Dir != "" {
		return cache.NewLayeredCache(cfg.TTL, cfg.Dir, cfg.TTL)
	}
	return cache.NewMemoryCache(cfg.TTL, 10*time.Minute)
}

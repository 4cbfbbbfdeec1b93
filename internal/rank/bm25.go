// Package rank scores indexed units against a query with BM25 and returns
// the top candidates. Ranking is deterministic: ties break by document id
// then ascending start line, so identical inputs always produce identical
// candidate sequences.
package rank

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ppiankov/veripack/internal/cache"
	"github.com/ppiankov/veripack/internal/cite"
	"github.com/ppiankov/veripack/internal/errors"
	"github.com/ppiankov/veripack/internal/index"
	"github.com/ppiankov/veripack/internal/model"
	"github.com/ppiankov/veripack/internal/tokenizer"
)

// Ranker scores indexed units against queries
type Ranker struct {
	idx      *index.Index
	resolver *cite.Resolver
	k1       float64 // Term-frequency saturation
	b        float64 // Length-normalization strength
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewRanker creates a ranker over the given index
func NewRanker(idx *index.Index, cfg model.RetrievalConfig) *Ranker {
	k1, b := cfg.K1, cfg.B
	if k1 <= 0 {
		k1 = 1.2
	}
	if b < 0 || b > 1 {
		b = 0.75
	}
	return &Ranker{
		idx:      idx,
		resolver: cite.NewResolver(idx.Corpus()),
		k1:       k1,
		b:        b,
	}
}

// WithCache attaches a candidate cache. Safe because ranking is a pure
// function of (index, query, top_k, parameters).
func (r *Ranker) WithCache(c cache.Cache, ttl time.Duration) *Ranker {
	r.cache = c
	r.cacheTTL = ttl
	return r
}

// Rank returns the top_k units by descending BM25 score. Units scoring
// zero are never returned, so the result may be shorter than top_k or
// empty — an empty result is valid input for the verdict engine, not an
// error.
func (r *Ranker) Rank(query string, topK int) ([]model.Candidate, error) {
	terms := tokenizer.Tokenize(query)
	if len(terms) == 0 {
		return nil, errors.NewConfigurationError("query has no terms")
	}
	if topK <= 0 {
		return nil, errors.NewConfigurationError("top_k must be positive")
	}

	key := r.cacheKey(query, topK)
	if r.cache != nil {
		if data, found := r.cache.Get(key); found {
			var cached []model.Candidate
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	type scored struct {
		unit  int
		score float64
	}
	var hits []scored
	for i, unit := range r.idx.Units() {
		score := 0.0
		for _, term := range terms {
			score += r.termScore(term, unit)
		}
		if score > 0 {
			hits = append(hits, scored{unit: i, score: score})
		}
	}

	sort.Slice(hits, func(a, b int) bool {
		ua, ub := r.idx.Units()[hits[a].unit], r.idx.Units()[hits[b].unit]
		if hits[a].score != hits[b].score {
			return hits[a].score > hits[b].score
		}
		if ua.DocID != ub.DocID {
			return ua.DocID < ub.DocID
		}
		return ua.Span.Start < ub.Span.Start
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}

	candidates := make([]model.Candidate, 0, len(hits))
	for _, h := range hits {
		unit := r.idx.Units()[h.unit]
		citation, err := r.resolver.Resolve(unit.DocID, unit.Span)
		if err != nil {
			// The unit came from this index, so resolution can only fail
			// on an internal invariant violation. Propagate.
			return nil, fmt.Errorf("resolve candidate %s %s: %w", unit.DocID, unit.Span.Location(), err)
		}
		candidates = append(candidates, model.Candidate{
			DocID:   unit.DocID,
			Span:    unit.Span,
			Score:   h.score,
			Snippet: citation.Snippet,
		})
	}

	if r.cache != nil {
		if data, err := json.Marshal(candidates); err == nil {
			_ = r.cache.Set(key, data, r.cacheTTL)
		}
	}

	return candidates, nil
}

// termScore computes one term's BM25 contribution for a unit:
// idf * (tf * (k1 + 1)) / (tf + k1 * (1 - b + b * len/avgLen)).
func (r *Ranker) termScore(term string, unit index.Unit) float64 {
	tf := float64(unit.Terms[term])
	if tf == 0 {
		return 0
	}

	idf := r.idf(term)
	norm := 1 - r.b + r.b*(float64(unit.Length)/r.idx.AvgLen())
	return idf * (tf * (r.k1 + 1)) / (tf + r.k1*norm)
}

// idf is log(N/df), clamped so unseen terms contribute zero, never negative
func (r *Ranker) idf(term string) float64 {
	df := r.idx.DF(term)
	if df == 0 {
		return 0
	}
	idf := math.Log(float64(r.idx.N()) / float64(df))
	if idf < 0 {
		return 0
	}
	return idf
}

func (r *Ranker) cacheKey(query string, topK int) string {
	return cache.Key(
		query,
		fmt.Sprintf("k=%d", topK),
		fmt.Sprintf("k1=%g;b=%g", r.k1, r.b),
		fmt.Sprintf("n=%d;avg=%g", r.idx.N(), r.idx.AvgLen()),
	)
}

// Package retrieval records, per query, the candidates considered and
// their scores. Purely observational: no verdict logic lives here.
package retrieval

import (
	"math"
	"sort"

	"github.com/ppiankov/veripack/internal/model"
)

// Builder turns ranked candidate sequences into audit-log entries
type Builder struct {
	topK int
}

// NewBuilder creates a builder carrying the configured top_k
func NewBuilder(topK int) *Builder {
	return &Builder{topK: topK}
}

// Record transforms one query's candidates into a log entry. Scores are
// rounded to 2 decimals for the log; the verdict path always sees the
// exact values.
func (b *Builder) Record(queryID string, candidates []model.Candidate) model.RetrievalLog {
	entries := make([]model.RetrievalCandidate, 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, model.RetrievalCandidate{
			DocID:    c.DocID,
			Score:    round2(c.Score),
			Location: c.Span.Location(),
		})
	}
	return model.RetrievalLog{
		QueryID:    queryID,
		TopK:       b.topK,
		Candidates: entries,
	}
}

// Merge combines per-claim logs into the single per-pack log: entries are
// deduplicated by (doc id, location) keeping the best score, ordered by
// descending score with (doc id, location) tie-breaks, and capped at the
// configured top_k.
func (b *Builder) Merge(logs ...model.RetrievalLog) model.RetrievalLog {
	type key struct{ docID, location string }
	best := make(map[key]model.RetrievalCandidate)

	for _, log := range logs {
		for _, c := range log.Candidates {
			k := key{c.DocID, c.Location}
			if prev, seen := best[k]; !seen || c.Score > prev.Score {
				best[k] = c
			}
		}
	}

	merged := make([]model.RetrievalCandidate, 0, len(best))
	for _, c := range best {
		merged = append(merged, c)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Score != merged[j].Score {
			return merged[i].Score > merged[j].Score
		}
		if merged[i].DocID != merged[j].DocID {
			return merged[i].DocID < merged[j].DocID
		}
		return merged[i].Location < merged[j].Location
	})

	if len(merged) > b.topK {
		merged = merged[:b.topK]
	}

	return model.RetrievalLog{TopK: b.topK, Candidates: merged}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

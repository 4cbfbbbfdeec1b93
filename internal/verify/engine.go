// Package verify turns ranked candidates into one of three verdicts:
// SUPPORTED, NOT_SUPPORTED, or INSUFFICIENT. The engine favors abstention
// over incorrect assertion: high lexical overlap alone never yields
// SUPPORTED without passing the polarity check.
package verify

import (
	"strconv"

	"github.com/ppiankov/veripack/internal/model"
	"github.com/ppiankov/veripack/internal/tokenizer"
)

// Engine applies the lexical-overlap, polarity, and numeric-mismatch
// checks to a claim's ranked candidates
type Engine struct {
	rules         *RuleTable
	support       float64 // Minimum overlap to consider support
	contradiction float64 // Lower: contradictions only need topical overlap
	maxInspect    int
}

// NewEngine creates a verdict engine with the given thresholds and rule
// table. A nil table uses the built-in vocabulary.
func NewEngine(cfg model.VerifyConfig, rules *RuleTable) *Engine {
	if rules == nil {
		rules = DefaultRuleTable()
	}
	support, contradiction := cfg.SupportThreshold, cfg.ContradictionThreshold
	if support <= 0 {
		support = 0.4
	}
	if contradiction <= 0 {
		contradiction = 0.3
	}
	maxInspect := cfg.MaxInspect
	if maxInspect <= 0 {
		maxInspect = 3
	}
	return &Engine{
		rules:         rules,
		support:       support,
		contradiction: contradiction,
		maxInspect:    maxInspect,
	}
}

// Verify inspects the top candidates in ranked order and returns the
// first terminal decision. If no candidate reaches a terminal decision,
// the claim is INSUFFICIENT with no evidence. Only the deciding candidate
// is cited; the rest stay in the retrieval log.
func (e *Engine) Verify(claim string, candidates []model.Candidate) model.Verdict {
	verdict := model.Verdict{Claim: claim, Label: model.LabelInsufficient}

	claimTerms := tokenizer.ContentTerms(claim)
	if len(claimTerms) == 0 {
		return verdict
	}

	inspect := candidates
	if len(inspect) > e.maxInspect {
		inspect = inspect[:e.maxInspect]
	}

	for _, cand := range inspect {
		label, terminal := e.decide(claim, cand.Snippet, overlap(claimTerms, cand.Snippet))
		if !terminal {
			continue
		}
		verdict.Label = label
		verdict.Evidence = []model.Citation{{
			DocID:    cand.DocID,
			Location: cand.Span.Location(),
			Snippet:  cand.Snippet,
		}}
		break
	}

	return verdict
}

// decide applies the decision procedure to a single candidate. The bool
// result reports whether a terminal decision was reached.
func (e *Engine) decide(claim, snippet string, overlap float64) (model.Label, bool) {
	// Numeric mismatch overrides everything: a quantitative disagreement
	// is a direct contradiction, since paraphrase cannot change a cited
	// figure. Gated on topical overlap so unrelated numbers elsewhere in
	// the corpus do not trigger it.
	if overlap >= e.contradiction && e.numbersConflict(claim, snippet) {
		return model.LabelNotSupported, true
	}

	claimNegative := e.rules.IsNegative(claim)
	snippetNegative := e.rules.IsNegative(snippet)

	switch {
	case !claimNegative && !snippetNegative && overlap >= e.support:
		return model.LabelSupported, true
	case !claimNegative && snippetNegative && overlap >= e.contradiction:
		// The claim asserts an action the evidence forbids.
		return model.LabelNotSupported, true
	case claimNegative && !snippetNegative && overlap >= e.contradiction:
		return model.LabelNotSupported, true
	case claimNegative && snippetNegative && overlap >= e.support:
		// Double negation agreement.
		return model.LabelSupported, true
	}

	return "", false
}

// numbersConflict reports whether both statements carry a bare number
// token and their first numbers differ
func (e *Engine) numbersConflict(claim, snippet string) bool {
	claimNums := e.rules.Numbers(claim)
	snippetNums := e.rules.Numbers(snippet)
	if len(claimNums) == 0 || len(snippetNums) == 0 {
		return false
	}

	a, errA := strconv.Atoi(claimNums[0])
	b, errB := strconv.Atoi(snippetNums[0])
	if errA != nil || errB != nil {
		return claimNums[0] != snippetNums[0]
	}
	return a != b
}

// overlap is the fraction of the claim's content terms present in the
// snippet
func overlap(claimTerms map[string]struct{}, snippet string) float64 {
	snippetTerms := make(map[string]struct{})
	for _, tok := range tokenizer.Tokenize(snippet) {
		snippetTerms[tok] = struct{}{}
	}

	shared := 0
	for term := range claimTerms {
		if _, ok := snippetTerms[term]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(claimTerms))
}

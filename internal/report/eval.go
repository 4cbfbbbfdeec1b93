// Package report computes summary statistics and quality checks over
// generated verification packs.
package report

import (
	"fmt"
	"io"

	"github.com/ppiankov/veripack/internal/model"
)

// Summary holds the label distribution and quality checks for a pack set
type Summary struct {
	Packs               int
	Claims              int
	Labels              map[model.Label]int
	WithEvidence        int
	PacksWithCandidates int
	Warnings            []string
}

// Evaluate computes the summary over the given packs
func Evaluate(packs []model.Pack) Summary {
	s := Summary{
		Packs: len(packs),
		Labels: map[model.Label]int{
			model.LabelSupported:    0,
			model.LabelNotSupported: 0,
			model.LabelInsufficient: 0,
		},
	}

	for _, pack := range packs {
		if len(pack.RetrievalLog.Candidates) > 0 {
			s.PacksWithCandidates++
		}
		for _, claim := range pack.Claims {
			s.Claims++
			s.Labels[claim.Label]++
			if len(claim.Evidence) > 0 {
				s.WithEvidence++
			}
		}
	}

	// A very low INSUFFICIENT rate suggests over-confidence; a very high
	// SUPPORTED rate suggests negation handling is being bypassed.
	if s.Claims > 0 {
		switch {
		case float64(s.Labels[model.LabelInsufficient]) < float64(s.Claims)*0.05:
			s.Warnings = append(s.Warnings, "Low INSUFFICIENT rate - may be over-confident")
		case float64(s.Labels[model.LabelSupported]) > float64(s.Claims)*0.9:
			s.Warnings = append(s.Warnings, "Very high SUPPORTED rate - double check negation handling")
		}
	}

	return s
}

// Render writes the human-readable evaluation report
func (s Summary) Render(w io.Writer) {
	line := "=================================================="
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "Verification Pack Evaluation")
	fmt.Fprintln(w, line)

	fmt.Fprintf(w, "\nLabel Distribution (%d claims):\n", s.Claims)
	for _, label := range []model.Label{model.LabelSupported, model.LabelNotSupported, model.LabelInsufficient} {
		count := s.Labels[label]
		pct := 0.0
		if s.Claims > 0 {
			pct = 100 * float64(count) / float64(s.Claims)
		}
		fmt.Fprintf(w, "  %s: %d (%.0f%%)\n", label, count, pct)
	}

	fmt.Fprintf(w, "\nEvidence Coverage:\n")
	fmt.Fprintf(w, "  Claims with evidence: %d/%d\n", s.WithEvidence, s.Claims)
	fmt.Fprintf(w, "  Packs with candidates: %d/%d\n", s.PacksWithCandidates, s.Packs)

	fmt.Fprintf(w, "\nQuality Checks:\n")
	if len(s.Warnings) == 0 {
		fmt.Fprintln(w, "  [OK] All checks passed")
	} else {
		for _, warning := range s.Warnings {
			fmt.Fprintf(w, "  [!] %s\n", warning)
		}
	}

	fmt.Fprintln(w, line)
}

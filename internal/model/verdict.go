package model

// Label is the three-way verification outcome for a claim
type Label string

const (
	LabelSupported    Label = "SUPPORTED"     // Evidence affirms the claim
	LabelNotSupported Label = "NOT_SUPPORTED" // Evidence contradicts the claim
	LabelInsufficient Label = "INSUFFICIENT"  // No evidence strong enough either way
)

// Candidate is one ranked retrieval result for a query. Candidates for a
// query are ordered by descending score; ties break by document id then
// ascending start line, so repeated runs produce identical output.
type Candidate struct {
	DocID   string  `json:"doc_id"`
	Span    Span    `json:"span"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet"` // Verbatim text for the span
}

// Citation is a pinpoint reference to evidence: document id, line range,
// and the verbatim snippet reconstructed from the document's stored lines
type Citation struct {
	DocID    string `json:"doc_id"`
	Location string `json:"location"` // e.g., "L003" or "L001-L004"
	Snippet  string `json:"snippet"`
}

// Verdict is the verification result for a single claim. INSUFFICIENT
// verdicts carry no evidence; SUPPORTED and NOT_SUPPORTED cite only the
// candidate that produced the terminal decision.
type Verdict struct {
	Claim    string     `json:"claim"`
	Label    Label      `json:"label"`
	Evidence []Citation `json:"evidence"`
}

package model

// RetrievalCandidate is one audit-log entry: which unit was considered for
// a query and how it scored. Purely observational, no verdict logic.
type RetrievalCandidate struct {
	DocID    string  `json:"doc_id"`
	Score    float64 `json:"score"` // Rounded to 2 decimals for the log
	Location string  `json:"location"`
}

// RetrievalLog records the candidates considered for one or more queries
type RetrievalLog struct {
	QueryID    string               `json:"query_id,omitempty"` // Empty on the merged per-pack log
	TopK       int                  `json:"top_k"`
	Candidates []RetrievalCandidate `json:"candidates"`
}

// Pack is the per-question output record: the synthesized answer, the
// verdict for every claim, and the merged retrieval log. Written as one
// JSON object per line to packs.jsonl.
type Pack struct {
	QID          string       `json:"qid"`
	Answer       string       `json:"answer"`
	Claims       []Verdict    `json:"claims"`
	RetrievalLog RetrievalLog `json:"retrieval_log"`
}

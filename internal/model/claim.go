package model

// Question is a natural-language question read from questions.jsonl
type Question struct {
	QID  string `json:"qid"`      // Question identifier (e.g., "q01")
	Text string `json:"question"` // The question text itself
}

// ClaimSet groups the claims attached to one question, as read from
// claims.jsonl. Individual claims stay plain strings end to end; the
// verdict carries the claim text back out.
type ClaimSet struct {
	QID    string   `json:"qid"`
	Claims []string `json:"claims"`
}

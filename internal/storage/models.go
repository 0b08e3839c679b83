package storage

// Evaluation is one submitted satisfaction assessment. Timestamps are
// stored as ISO-8601 text, matching what clients submit. Sectors holds
// the serialized sector→sub-rating mapping exactly as received.
type Evaluation struct {
	ID            string `db:"id"`
	DeviceID      string `db:"device_id"`
	Timestamp     string `db:"timestamp"`
	OverallRating string `db:"overall_rating"`
	Sectors       string `db:"sectors"`
	Feedback      string `db:"feedback"`
	CreatedAt     string `db:"created_at"`
}

// VoteControl is the per-device eligibility ledger row. One row per
// device; a new accepted vote overwrites LastVoteAt.
type VoteControl struct {
	DeviceID   string `db:"device_id"`
	LastVoteAt string `db:"last_vote_at"`
	CreatedAt  string `db:"created_at"`
	UpdatedAt  string `db:"updated_at"`
}

// SystemLogEntry is an append-only audit record. Never mutated or
// deleted; read only through the operator CLI.
type SystemLogEntry struct {
	ID        int64  `db:"id"`
	Action    string `db:"action"`
	Details   string `db:"details"`
	Timestamp string `db:"timestamp"`
}

// Audit trail action tags.
const (
	ActionSystemStarted       = "system-started"
	ActionEvaluationSubmitted = "evaluation-submitted"
	ActionTimerReset          = "timer-reset"
)

// Statistics is the aggregate view over the evaluations table,
// computed in a single consistent snapshot.
type Statistics struct {
	TotalEvaluations int            `json:"totalEvaluations"`
	EvaluationsToday int            `json:"evaluationsToday"`
	Distribution     map[string]int `json:"distribution"`
	TotalFeedbacks   int            `json:"totalFeedbacks"`
}

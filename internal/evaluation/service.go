// Package evaluation holds the domain services: vote eligibility,
// submission, statistics and the administrative voting-window reset.
package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"evaluation-backend/internal/clock"
	"evaluation-backend/internal/storage"
)

// Submission is the client payload for a new evaluation. Sectors is
// kept as raw JSON so the mapping round-trips byte-for-byte.
type Submission struct {
	ID            string          `json:"id"`
	DeviceID      string          `json:"deviceId"`
	Timestamp     string          `json:"timestamp"`
	OverallRating string          `json:"overallRating"`
	Sectors       json.RawMessage `json:"sectors,omitempty"`
	Feedback      string          `json:"feedback,omitempty"`
}

// Record is one stored evaluation as exposed by the list endpoint.
// Absent optional fields read back as {} and "", never null.
type Record struct {
	ID            string          `json:"id"`
	DeviceID      string          `json:"deviceId"`
	Timestamp     string          `json:"timestamp"`
	OverallRating string          `json:"overallRating"`
	Sectors       json.RawMessage `json:"sectors"`
	Feedback      string          `json:"feedback"`
}

// Stats is the statistics endpoint payload.
type Stats struct {
	TotalEvaluations int            `json:"totalEvaluations"`
	EvaluationsToday int            `json:"evaluationsToday"`
	Distribution     map[string]int `json:"distribution"`
	TotalFeedbacks   int            `json:"totalFeedbacks"`
	Timestamp        string         `json:"timestamp"`
}

type Service struct {
	store storage.Provider
	clock *clock.Clock

	logger *slog.Logger
}

func NewService(store storage.Provider, clk *clock.Clock) *Service {
	return &Service{
		store:  store,
		clock:  clk,
		logger: slog.With("component", "evaluation"),
	}
}

// NowISO returns the current local time as an ISO-8601 string, for
// response timestamps.
func (s *Service) NowISO() string {
	return s.clock.Now().Format(time.RFC3339)
}

// HasVotedToday reports whether the device already voted on the
// current local calendar day. A missing ledger row, an unreadable
// stored timestamp or a store failure all resolve to false: voting
// availability is deliberately favored over strict eligibility, and
// the degradation is logged rather than surfaced.
func (s *Service) HasVotedToday(ctx context.Context, deviceID string) bool {
	vote, err := s.store.GetVoteControl(ctx, deviceID)
	if err != nil {
		s.logger.Warn("Eligibility check failed, treating device as not voted",
			"device_id", deviceID, "error", err)
		return false
	}
	if vote == nil {
		return false
	}

	lastVote, err := clock.ParseTimestamp(vote.LastVoteAt)
	if err != nil {
		s.logger.Warn("Malformed last vote timestamp, treating device as not voted",
			"device_id", deviceID, "last_vote_at", vote.LastVoteAt, "error", err)
		return false
	}

	return s.clock.SameDay(lastVote, s.clock.Now())
}

// Submit validates the payload, enforces the one-vote-per-day rule and
// persists the evaluation together with the vote-control upsert in one
// transaction. Returns the evaluation id on success.
func (s *Service) Submit(ctx context.Context, sub Submission) (string, error) {
	for _, field := range []struct {
		name, value string
	}{
		{"id", sub.ID},
		{"deviceId", sub.DeviceID},
		{"timestamp", sub.Timestamp},
		{"overallRating", sub.OverallRating},
	} {
		if field.value == "" {
			return "", &ValidationError{Field: field.name}
		}
	}

	if s.HasVotedToday(ctx, sub.DeviceID) {
		return "", ErrAlreadyVoted
	}

	now := s.clock.Now().Format(time.RFC3339)

	sectors := string(sub.Sectors)
	if sectors == "" || sectors == "null" {
		sectors = "{}"
	}

	evaluation := storage.Evaluation{
		ID:            sub.ID,
		DeviceID:      sub.DeviceID,
		Timestamp:     sub.Timestamp,
		OverallRating: sub.OverallRating,
		Sectors:       sectors,
		Feedback:      sub.Feedback,
		CreatedAt:     now,
	}
	vote := storage.VoteControl{
		DeviceID:   sub.DeviceID,
		LastVoteAt: sub.Timestamp,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.SaveEvaluation(ctx, evaluation, vote); err != nil {
		return "", err
	}

	s.logAction(ctx, storage.ActionEvaluationSubmitted,
		fmt.Sprintf("device=%s rating=%s", sub.DeviceID, sub.OverallRating))

	s.logger.Info("Evaluation saved", "id", sub.ID, "device_id", sub.DeviceID, "rating", sub.OverallRating)
	return sub.ID, nil
}

// List returns all evaluations, newest first.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	evaluations, err := s.store.ListEvaluations(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(evaluations))
	for _, e := range evaluations {
		sectors := e.Sectors
		if sectors == "" {
			sectors = "{}"
		}
		records = append(records, Record{
			ID:            e.ID,
			DeviceID:      e.DeviceID,
			Timestamp:     e.Timestamp,
			OverallRating: e.OverallRating,
			Sectors:       json.RawMessage(sectors),
			Feedback:      e.Feedback,
		})
	}
	return records, nil
}

// Statistics computes the aggregate view over all evaluations.
func (s *Service) Statistics(ctx context.Context) (*Stats, error) {
	stats, err := s.store.Statistics(ctx, s.clock.Today())
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalEvaluations: stats.TotalEvaluations,
		EvaluationsToday: stats.EvaluationsToday,
		Distribution:     stats.Distribution,
		TotalFeedbacks:   stats.TotalFeedbacks,
		Timestamp:        s.clock.Now().Format(time.RFC3339),
	}, nil
}

// ResetVotingWindow clears the whole vote-control ledger so every
// device is immediately eligible again. Evaluation history is kept.
func (s *Service) ResetVotingWindow(ctx context.Context) error {
	removed, err := s.store.ClearVoteControl(ctx)
	if err != nil {
		return err
	}

	s.logAction(ctx, storage.ActionTimerReset,
		fmt.Sprintf("voting window reset, %d ledger rows cleared", removed))

	s.logger.Info("Voting window reset", "rows_cleared", removed)
	return nil
}

// LogSystemStarted records the startup audit entry.
func (s *Service) LogSystemStarted(ctx context.Context, details string) {
	s.logAction(ctx, storage.ActionSystemStarted, details)
}

// logAction appends to the audit trail. Best-effort: a failure is
// logged and never escalated to the caller.
func (s *Service) logAction(ctx context.Context, action string, details string) {
	entry := storage.SystemLogEntry{
		Action:    action,
		Details:   details,
		Timestamp: s.clock.Now().Format(time.RFC3339),
	}
	if err := s.store.AppendSystemLog(ctx, entry); err != nil {
		s.logger.Warn("Failed to append audit entry", "action", action, "error", err)
	}
}

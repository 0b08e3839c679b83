package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrDuplicateEvaluation is returned when an evaluation id already
// exists. Duplicate ids are rejected, not overwritten.
var ErrDuplicateEvaluation = errors.New("evaluation id already exists")

// ListEvaluations returns all evaluations, newest first.
func (p *SQLProvider) ListEvaluations(ctx context.Context) ([]Evaluation, error) {
	evaluations := []Evaluation{}
	err := p.db.SelectContext(ctx, &evaluations, `
		SELECT id, device_id, timestamp, overall_rating,
		       COALESCE(sectors, '') AS sectors,
		       COALESCE(feedback, '') AS feedback,
		       created_at
		FROM evaluations
		ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	return evaluations, nil
}

// SaveEvaluation inserts the evaluation and upserts the device's
// vote-control row in a single transaction. A concurrent eligibility
// check never observes one write without the other. The vote-control
// upsert overwrites last_vote_at on conflict, so a second same-device
// transaction still commits.
func (p *SQLProvider) SaveEvaluation(ctx context.Context, evaluation Evaluation, vote VoteControl) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO evaluations (id, device_id, timestamp, overall_rating, sectors, feedback, created_at)
		VALUES (:id, :device_id, :timestamp, :overall_rating, :sectors, :feedback, :created_at)`,
		evaluation)
	if err != nil {
		if isPrimaryKeyConflict(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateEvaluation, evaluation.ID)
		}
		return fmt.Errorf("insert evaluation: %w", err)
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO vote_control (device_id, last_vote_at, created_at, updated_at)
		VALUES (:device_id, :last_vote_at, :created_at, :updated_at)
		ON CONFLICT(device_id) DO UPDATE SET
			last_vote_at = excluded.last_vote_at,
			updated_at = excluded.updated_at`,
		vote)
	if err != nil {
		return fmt.Errorf("upsert vote control: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit evaluation: %w", err)
	}
	return nil
}

// Statistics computes the aggregate view inside one read transaction
// so all counts reflect the same snapshot of the evaluations table.
// The today parameter is the local calendar date as YYYY-MM-DD;
// evaluation timestamps are compared as stored, not re-localized.
func (p *SQLProvider) Statistics(ctx context.Context, today string) (*Statistics, error) {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stats := &Statistics{Distribution: map[string]int{}}

	if err := tx.GetContext(ctx, &stats.TotalEvaluations, `SELECT COUNT(*) FROM evaluations`); err != nil {
		return nil, fmt.Errorf("count evaluations: %w", err)
	}

	err = tx.GetContext(ctx, &stats.EvaluationsToday,
		`SELECT COUNT(*) FROM evaluations WHERE DATE(timestamp) = ?`, today)
	if err != nil {
		return nil, fmt.Errorf("count today: %w", err)
	}

	rows, err := tx.QueryxContext(ctx,
		`SELECT overall_rating, COUNT(*) FROM evaluations GROUP BY overall_rating`)
	if err != nil {
		return nil, fmt.Errorf("rating distribution: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rating string
		var count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("scan distribution: %w", err)
		}
		stats.Distribution[rating] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rating distribution: %w", err)
	}

	err = tx.GetContext(ctx, &stats.TotalFeedbacks,
		`SELECT COUNT(*) FROM evaluations WHERE feedback IS NOT NULL AND feedback != ''`)
	if err != nil {
		return nil, fmt.Errorf("count feedbacks: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit statistics: %w", err)
	}
	return stats, nil
}

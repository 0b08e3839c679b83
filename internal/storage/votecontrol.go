package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetVoteControl returns the ledger row for a device, or nil if the
// device has never voted.
func (p *SQLProvider) GetVoteControl(ctx context.Context, deviceID string) (*VoteControl, error) {
	var vote VoteControl
	err := p.db.GetContext(ctx, &vote, `
		SELECT device_id, last_vote_at, created_at, updated_at
		FROM vote_control
		WHERE device_id = ?`, deviceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vote control: %w", err)
	}
	return &vote, nil
}

// ClearVoteControl deletes every ledger row, making all devices
// eligible again. Evaluation history is untouched. Returns the number
// of rows removed.
func (p *SQLProvider) ClearVoteControl(ctx context.Context) (int64, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM vote_control`)
	if err != nil {
		return 0, fmt.Errorf("clear vote control: %w", err)
	}
	return res.RowsAffected()
}

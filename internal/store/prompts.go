package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Prompt is one user prompt and its completion state. Seq is the
// per-session job number assigned by the insert trigger.
type Prompt struct {
	ID        int64
	SessionID string
	CreatedAt time.Time
	Prompt    string
	Cwd       string
	Seq       int64
	StoppedAt time.Time // zero while the prompt is still running
}

// Duration returns the prompt's wall-clock run time. Zero when the
// prompt has not finished.
func (p *Prompt) Duration() time.Duration {
	if p.StoppedAt.IsZero() {
		return 0
	}
	return p.StoppedAt.Sub(p.CreatedAt)
}

// RecordPrompt inserts a new prompt row for the session. The seq trigger
// assigns the job number.
func (s *Store) RecordPrompt(ctx context.Context, sessionID, prompt, cwd string) error {
	now := time.Now().UnixMilli()
	_, err := s.exec(ctx,
		`INSERT INTO prompt(session_id, created_at, prompt, cwd) VALUES(?,?,?,?)`,
		sessionID, now, nullStr(prompt), nullStr(cwd),
	)
	if err != nil {
		return fmt.Errorf("recording prompt: %w", err)
	}
	return nil
}

// FinishLatestPrompt stamps the newest unfinished prompt for the session
// and returns it with its seq. Returns nil when the session has no
// running prompt, or when a concurrent Stop finished it first.
func (s *Store) FinishLatestPrompt(ctx context.Context, sessionID string) (*Prompt, error) {
	var (
		p         Prompt
		createdMS int64
		promptTxt sql.NullString
		cwd       sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, prompt, cwd
		 FROM prompt
		 WHERE session_id = ? AND stoped_at IS NULL
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
		sessionID,
	).Scan(&p.ID, &createdMS, &promptTxt, &cwd)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding running prompt: %w", err)
	}

	now := time.Now()
	res, err := s.exec(ctx,
		`UPDATE prompt SET stoped_at = ? WHERE id = ? AND stoped_at IS NULL`,
		now.UnixMilli(), p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("finishing prompt %d: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}

	var seq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT seq FROM prompt WHERE id = ?`, p.ID).Scan(&seq); err != nil {
		return nil, fmt.Errorf("reading prompt seq: %w", err)
	}

	p.SessionID = sessionID
	p.CreatedAt = time.UnixMilli(createdMS)
	p.Prompt = promptTxt.String
	p.Cwd = cwd.String
	p.Seq = seq.Int64
	if !seq.Valid {
		p.Seq = 1
	}
	p.StoppedAt = now
	return &p, nil
}

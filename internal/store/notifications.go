package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// staleClaimWindow bounds how far back the reconciler inspects claims.
// Claims older than this keep their pid untouched; a small recent window
// limits exposure to pid reuse.
const staleClaimWindow = 5 * time.Minute

// Notification is one scheduled notification row.
type Notification struct {
	ID               int64
	SessionID        string
	ScheduledAt      time.Time
	SendAfter        time.Time
	Message          string
	Cwd              string
	Type             string
	ContextInfo      string
	Sent             bool
	Cancelled        bool
	WatcherPID       int       // 0 when unclaimed
	WatcherStartedAt time.Time // zero when unclaimed
}

// ScheduleNotification inserts a pending notification due after delay.
func (s *Store) ScheduleNotification(ctx context.Context, sessionID, message, cwd, kind, contextInfo string, delay time.Duration) (int64, error) {
	if contextInfo == "" {
		contextInfo = "{}"
	}
	now := time.Now()
	res, err := s.exec(ctx,
		`INSERT INTO notifications(session_id, scheduled_at, send_after, message, cwd, notification_type, context_info)
		 VALUES(?,?,?,?,?,?,?)`,
		sessionID, now.UnixMilli(), now.Add(delay).UnixMilli(),
		nullStr(message), nullStr(cwd), kind, contextInfo,
	)
	if err != nil {
		return 0, fmt.Errorf("scheduling notification: %w", err)
	}
	return res.LastInsertId()
}

// GetNotification returns the notification or nil when the id is unknown.
func (s *Store) GetNotification(ctx context.Context, id int64) (*Notification, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, session_id, scheduled_at, send_after, message, cwd,
		        notification_type, context_info, sent, cancelled,
		        watcher_pid, watcher_started_at
		 FROM notifications WHERE id = ?`,
		id,
	)

	var (
		n                    Notification
		scheduledMS, afterMS int64
		message, cwd, kind   sql.NullString
		contextInfo          sql.NullString
		pid                  sql.NullInt64
		startedMS            sql.NullInt64
	)
	err := row.Scan(&n.ID, &n.SessionID, &scheduledMS, &afterMS, &message, &cwd,
		&kind, &contextInfo, &n.Sent, &n.Cancelled, &pid, &startedMS)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading notification %d: %w", id, err)
	}

	n.ScheduledAt = time.UnixMilli(scheduledMS)
	n.SendAfter = time.UnixMilli(afterMS)
	n.Message = message.String
	n.Cwd = cwd.String
	n.Type = kind.String
	n.ContextInfo = contextInfo.String
	n.WatcherPID = int(pid.Int64)
	if startedMS.Valid {
		n.WatcherStartedAt = time.UnixMilli(startedMS.Int64)
	}
	return &n, nil
}

// ClaimNotification atomically claims the notification for the given pid.
// Exactly one caller sees true; anyone else finds watcher_pid already set
// or the row already terminal.
func (s *Store) ClaimNotification(ctx context.Context, id int64, pid int) (bool, error) {
	res, err := s.exec(ctx,
		`UPDATE notifications
		 SET watcher_pid = ?, watcher_started_at = ?
		 WHERE id = ? AND watcher_pid IS NULL AND sent = 0 AND cancelled = 0`,
		pid, time.Now().UnixMilli(), id,
	)
	if err != nil {
		return false, fmt.Errorf("claiming notification %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// MarkNotificationSent flips the notification to sent unless it was
// cancelled or already delivered. The affected-row count is the delivery
// token: only the caller that sees true may notify the user.
func (s *Store) MarkNotificationSent(ctx context.Context, id int64) (bool, error) {
	res, err := s.exec(ctx,
		`UPDATE notifications
		 SET sent = 1, watcher_pid = NULL
		 WHERE id = ? AND sent = 0 AND cancelled = 0`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("marking notification %d sent: %w", id, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// IsNotificationCancelled reports whether the notification was cancelled.
// Unknown ids report false; the delivery update is the real gate.
func (s *Store) IsNotificationCancelled(ctx context.Context, id int64) (bool, error) {
	var cancelled bool
	err := s.db.QueryRowContext(ctx,
		`SELECT cancelled FROM notifications WHERE id = ?`, id,
	).Scan(&cancelled)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking notification %d: %w", id, err)
	}
	return cancelled, nil
}

// CancelRecentNotifications cancels the session's pending notifications
// scheduled inside the activity window and returns the watcher pids that
// were attached to them. Cancelling an already-cancelled row is a no-op.
func (s *Store) CancelRecentNotifications(ctx context.Context, sessionID string, window time.Duration) ([]int, error) {
	cutoff := time.Now().Add(-window).UnixMilli()

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT watcher_pid
		 FROM notifications
		 WHERE session_id = ? AND sent = 0 AND cancelled = 0
		   AND scheduled_at > ? AND watcher_pid IS NOT NULL`,
		sessionID, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("listing watcher pids: %w", err)
	}
	defer rows.Close()

	var pids []int
	for rows.Next() {
		var pid int
		if err := rows.Scan(&pid); err != nil {
			return nil, err
		}
		if pid > 0 {
			pids = append(pids, pid)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	_, err = s.exec(ctx,
		`UPDATE notifications
		 SET cancelled = 1
		 WHERE session_id = ? AND sent = 0 AND cancelled = 0 AND scheduled_at > ?`,
		sessionID, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("cancelling notifications: %w", err)
	}
	return pids, nil
}

// ListPendingNotifications returns pending notifications ordered by due
// time, for the status command.
func (s *Store) ListPendingNotifications(ctx context.Context) ([]Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, scheduled_at, send_after, message, cwd,
		        notification_type, context_info, sent, cancelled,
		        watcher_pid, watcher_started_at
		 FROM notifications
		 WHERE sent = 0 AND cancelled = 0
		 ORDER BY send_after ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing pending notifications: %w", err)
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var (
			n                    Notification
			scheduledMS, afterMS int64
			message, cwd, kind   sql.NullString
			contextInfo          sql.NullString
			pid                  sql.NullInt64
			startedMS            sql.NullInt64
		)
		if err := rows.Scan(&n.ID, &n.SessionID, &scheduledMS, &afterMS, &message, &cwd,
			&kind, &contextInfo, &n.Sent, &n.Cancelled, &pid, &startedMS); err != nil {
			return nil, err
		}
		n.ScheduledAt = time.UnixMilli(scheduledMS)
		n.SendAfter = time.UnixMilli(afterMS)
		n.Message = message.String
		n.Cwd = cwd.String
		n.Type = kind.String
		n.ContextInfo = contextInfo.String
		n.WatcherPID = int(pid.Int64)
		if startedMS.Valid {
			n.WatcherStartedAt = time.UnixMilli(startedMS.Int64)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// ReconcileStaleWatchers clears claims whose watcher process died without
// releasing them, so a later watcher can claim the row again. alive
// reports whether a pid is still running. Returns the cleared pids.
func (s *Store) ReconcileStaleWatchers(ctx context.Context, alive func(pid int) bool) ([]int, error) {
	cutoff := time.Now().Add(-staleClaimWindow).UnixMilli()

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT watcher_pid
		 FROM notifications
		 WHERE watcher_pid IS NOT NULL AND sent = 0 AND cancelled = 0
		   AND watcher_started_at > ?`,
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("listing watchers: %w", err)
	}
	defer rows.Close()

	var candidates []int
	for rows.Next() {
		var pid int
		if err := rows.Scan(&pid); err != nil {
			return nil, err
		}
		if pid > 0 {
			candidates = append(candidates, pid)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var cleared []int
	for _, pid := range candidates {
		if alive(pid) {
			continue
		}
		if _, err := s.exec(ctx,
			`UPDATE notifications SET watcher_pid = NULL WHERE watcher_pid = ?`, pid,
		); err != nil {
			return cleared, fmt.Errorf("clearing stale watcher %d: %w", pid, err)
		}
		s.log.Info().Int("watcher_pid", pid).Msg("cleaned up stale watcher process")
		cleared = append(cleared, pid)
	}
	return cleared, nil
}

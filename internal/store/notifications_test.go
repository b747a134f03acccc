package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimNotificationExactlyOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.ScheduleNotification(ctx, "sess-1", "msg", "", "waiting", "", time.Minute)
	require.NoError(t, err)

	ok, err := s.ClaimNotification(ctx, id, 1001)
	require.NoError(t, err)
	assert.True(t, ok)

	// A second claimant loses.
	ok, err = s.ClaimNotification(ctx, id, 1002)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := s.GetNotification(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 1001, n.WatcherPID)
	assert.False(t, n.WatcherStartedAt.IsZero())
}

func TestClaimNotificationConcurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.ScheduleNotification(ctx, "sess-1", "msg", "", "waiting", "", time.Minute)
	require.NoError(t, err)

	// Many watchers racing on the same row: exactly one conditional
	// UPDATE may report an affected row.
	const attempts = 20
	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			ok, err := s.ClaimNotification(ctx, id, pid)
			assert.NoError(t, err)
			if ok {
				wins.Add(1)
			}
		}(5000 + i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())

	n, err := s.GetNotification(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.GreaterOrEqual(t, n.WatcherPID, 5000)
}

func TestClaimNotificationTerminalRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.ScheduleNotification(ctx, "sess-1", "msg", "", "waiting", "", time.Minute)
	require.NoError(t, err)

	_, err = s.CancelRecentNotifications(ctx, "sess-1", time.Hour)
	require.NoError(t, err)

	ok, err := s.ClaimNotification(ctx, id, 1001)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMarkNotificationSentOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.ScheduleNotification(ctx, "sess-1", "msg", "", "waiting", "", 0)
	require.NoError(t, err)

	ok, err := s.MarkNotificationSent(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	// Sent is monotonic; nobody else gets the delivery token.
	ok, err = s.MarkNotificationSent(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := s.GetNotification(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.True(t, n.Sent)
	assert.Zero(t, n.WatcherPID)
}

func TestMarkNotificationSentAfterCancel(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.ScheduleNotification(ctx, "sess-1", "msg", "", "waiting", "", time.Minute)
	require.NoError(t, err)

	_, err = s.CancelRecentNotifications(ctx, "sess-1", time.Hour)
	require.NoError(t, err)

	ok, err := s.MarkNotificationSent(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	cancelled, err := s.IsNotificationCancelled(ctx, id)
	require.NoError(t, err)
	assert.True(t, cancelled)
}

func TestCancelRecentNotificationsWindow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recent, err := s.ScheduleNotification(ctx, "sess-1", "recent", "", "waiting", "", time.Minute)
	require.NoError(t, err)
	old, err := s.ScheduleNotification(ctx, "sess-1", "old", "", "waiting", "", time.Minute)
	require.NoError(t, err)
	other, err := s.ScheduleNotification(ctx, "sess-2", "other session", "", "waiting", "", time.Minute)
	require.NoError(t, err)

	// Age the second notification out of the activity window.
	aged := time.Now().Add(-2 * time.Hour).UnixMilli()
	_, err = s.db.Exec(`UPDATE notifications SET scheduled_at = ? WHERE id = ?`, aged, old)
	require.NoError(t, err)

	ok, err := s.ClaimNotification(ctx, recent, 2001)
	require.NoError(t, err)
	require.True(t, ok)

	pids, err := s.CancelRecentNotifications(ctx, "sess-1", 90*time.Second)
	require.NoError(t, err)
	assert.Equal(t, []int{2001}, pids)

	cancelled, err := s.IsNotificationCancelled(ctx, recent)
	require.NoError(t, err)
	assert.True(t, cancelled)

	// Outside the window and other sessions stay pending.
	cancelled, err = s.IsNotificationCancelled(ctx, old)
	require.NoError(t, err)
	assert.False(t, cancelled)
	cancelled, err = s.IsNotificationCancelled(ctx, other)
	require.NoError(t, err)
	assert.False(t, cancelled)
}

func TestCancelRecentNotificationsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.ScheduleNotification(ctx, "sess-1", "msg", "", "waiting", "", time.Minute)
	require.NoError(t, err)

	_, err = s.CancelRecentNotifications(ctx, "sess-1", time.Hour)
	require.NoError(t, err)

	// Sweeping again finds nothing to cancel and no pids to signal.
	pids, err := s.CancelRecentNotifications(ctx, "sess-1", time.Hour)
	require.NoError(t, err)
	assert.Empty(t, pids)
}

func TestIsNotificationCancelledUnknownID(t *testing.T) {
	s := newTestStore(t)

	cancelled, err := s.IsNotificationCancelled(context.Background(), 9999)
	require.NoError(t, err)
	assert.False(t, cancelled)
}

func TestListPendingNotifications(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.ScheduleNotification(ctx, "sess-1", "due sooner", "", "waiting", "", time.Minute)
	require.NoError(t, err)
	second, err := s.ScheduleNotification(ctx, "sess-1", "due later", "", "waiting", "", time.Hour)
	require.NoError(t, err)
	sent, err := s.ScheduleNotification(ctx, "sess-1", "already sent", "", "waiting", "", 0)
	require.NoError(t, err)
	_, err = s.MarkNotificationSent(ctx, sent)
	require.NoError(t, err)

	pending, err := s.ListPendingNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first, pending[0].ID)
	assert.Equal(t, second, pending[1].ID)
}

func TestReconcileStaleWatchers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	deadID, err := s.ScheduleNotification(ctx, "sess-1", "dead watcher", "", "waiting", "", time.Minute)
	require.NoError(t, err)
	liveID, err := s.ScheduleNotification(ctx, "sess-1", "live watcher", "", "waiting", "", time.Minute)
	require.NoError(t, err)

	ok, err := s.ClaimNotification(ctx, deadID, 3001)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.ClaimNotification(ctx, liveID, 3002)
	require.NoError(t, err)
	require.True(t, ok)

	cleared, err := s.ReconcileStaleWatchers(ctx, func(pid int) bool { return pid == 3002 })
	require.NoError(t, err)
	assert.Equal(t, []int{3001}, cleared)

	// The orphaned row can be claimed again.
	ok, err = s.ClaimNotification(ctx, deadID, 3003)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := s.GetNotification(ctx, liveID)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 3002, n.WatcherPID)
}

func TestReconcileSkipsOldClaims(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.ScheduleNotification(ctx, "sess-1", "msg", "", "waiting", "", time.Minute)
	require.NoError(t, err)
	ok, err := s.ClaimNotification(ctx, id, 4001)
	require.NoError(t, err)
	require.True(t, ok)

	// Push the claim outside the reconcile window.
	aged := time.Now().Add(-10 * time.Minute).UnixMilli()
	_, err = s.db.Exec(`UPDATE notifications SET watcher_started_at = ? WHERE id = ?`, aged, id)
	require.NoError(t, err)

	cleared, err := s.ReconcileStaleWatchers(ctx, func(int) bool { return false })
	require.NoError(t, err)
	assert.Empty(t, cleared)
}

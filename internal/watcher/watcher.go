package watcher

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/shekohex/dotai/internal/notify"
	"github.com/shekohex/dotai/internal/store"
)

// Runner drives one notification from claimed to delivered.
type Runner struct {
	Store    *store.Store
	Notifier *notify.Notifier
	Log      zerolog.Logger

	// PollInterval is how often the wait loop re-reads the cancelled
	// flag. Defaults to one second.
	PollInterval time.Duration
}

// Watch claims the notification, waits out its delay while polling for
// cancellation, then delivers. Losing the claim or finding the row
// cancelled are normal exits, not errors.
func (r *Runner) Watch(ctx context.Context, id int64) error {
	pid := os.Getpid()
	ok, err := r.Store.ClaimNotification(ctx, id, pid)
	if err != nil {
		return err
	}
	if !ok {
		r.Log.Info().Int64("notification_id", id).Msg("notification already has a watcher, exiting")
		return nil
	}

	n, err := r.Store.GetNotification(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return nil
	}

	interval := r.PollInterval
	if interval <= 0 {
		interval = time.Second
	}

	for {
		remaining := time.Until(n.SendAfter)
		if remaining <= 0 {
			break
		}
		sleep := interval
		if remaining < sleep {
			sleep = remaining
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}

		cancelled, err := r.Store.IsNotificationCancelled(ctx, id)
		if err != nil {
			return err
		}
		if cancelled {
			r.Log.Info().Int64("notification_id", id).Msg("notification was cancelled during wait")
			return nil
		}
	}

	return r.Deliver(ctx, id)
}

// Deliver flips the notification to sent and publishes it. The
// conditional update is the only delivery token: whoever loses it stays
// silent, so a cancellation racing the deadline can never double-fire.
func (r *Runner) Deliver(ctx context.Context, id int64) error {
	n, err := r.Store.GetNotification(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return nil
	}

	ok, err := r.Store.MarkNotificationSent(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		r.Log.Info().Int64("notification_id", id).Msg("notification already cancelled/sent")
		return nil
	}

	m := buildMessage(n)
	if err := r.Notifier.Deliver(ctx, m); err != nil {
		return err
	}
	r.Log.Info().Int64("notification_id", id).Str("message", m.Body).Msg("sent delayed notification")
	return nil
}

// buildMessage maps a stored notification row to its delivery form.
func buildMessage(n *store.Notification) notify.Message {
	info := store.ParseContextInfo(n.ContextInfo)

	title := "Claude Task"
	if n.Cwd != "" {
		title = filepath.Base(n.Cwd)
	}

	m := notify.Message{
		Title:      title,
		Cwd:        n.Cwd,
		ToolName:   info.ToolName,
		WaitingFor: info.WaitingFor,
	}

	switch n.Type {
	case "permission":
		m.Kind = notify.KindPermissionRequest
		m.Body = "Permission required: " + n.Message
		if m.WaitingFor == "" {
			m.WaitingFor = "permission"
		}
	case "waiting_tool":
		m.Kind = notify.KindWaitingForInput
		m.Body = "Tool waiting: " + n.Message
		if m.WaitingFor == "" {
			m.WaitingFor = "tool_completion"
		}
	case "waiting":
		m.Kind = notify.KindWaitingForInput
		m.Body = "Waiting for input"
		if m.WaitingFor == "" {
			m.WaitingFor = "user_input"
		}
	default:
		m.Kind = notify.KindGeneral
		m.Body = n.Message
		if n.Cwd == "" {
			m.Title = "Claude Code"
		}
	}

	return m
}

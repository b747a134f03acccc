package hook

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/shekohex/dotai/internal/config"
	"github.com/shekohex/dotai/internal/notify"
	"github.com/shekohex/dotai/internal/store"
	"github.com/shekohex/dotai/internal/watcher"
)

// importantTools are the tools worth a tool-activity notification.
var importantTools = map[string]bool{
	"Bash":      true,
	"Write":     true,
	"Edit":      true,
	"MultiEdit": true,
	"WebFetch":  true,
}

// Tracker handles the four hook events against the shared store.
type Tracker struct {
	store    *store.Store
	cfg      *config.Configuration
	notifier *notify.Notifier
	runner   *watcher.Runner
	log      zerolog.Logger

	// Overridable in tests; default to the real process operations.
	spawn     func(id int64) (int, error)
	terminate func(pid int) error
}

// NewTracker wires the event handlers.
func NewTracker(st *store.Store, cfg *config.Configuration, notifier *notify.Notifier, runner *watcher.Runner, log zerolog.Logger) *Tracker {
	return &Tracker{
		store:     st,
		cfg:       cfg,
		notifier:  notifier,
		runner:    runner,
		log:       log,
		spawn:     watcher.Spawn,
		terminate: watcher.Terminate,
	}
}

// Handle dispatches a validated event to its handler.
func (t *Tracker) Handle(ctx context.Context, ev *Event) error {
	switch deref(ev.HookEventName) {
	case EventUserPromptSubmit:
		return t.handleUserPromptSubmit(ctx, ev)
	case EventStop:
		return t.handleStop(ctx, ev)
	case EventNotification:
		return t.handleNotification(ctx, ev)
	case EventPostToolUse:
		return t.handlePostToolUse(ctx, ev)
	default:
		return fmt.Errorf("unknown event type: %s", deref(ev.HookEventName))
	}
}

// handleUserPromptSubmit records the prompt and sweeps pending
// notifications for the session: the user is clearly at the keyboard.
func (t *Tracker) handleUserPromptSubmit(ctx context.Context, ev *Event) error {
	sessionID := deref(ev.SessionID)

	if err := t.store.RecordPrompt(ctx, sessionID, deref(ev.Prompt), deref(ev.Cwd)); err != nil {
		return err
	}
	if err := t.cancelPending(ctx, sessionID, "user_activity"); err != nil {
		return err
	}

	t.log.Info().Str("session_id", sessionID).Msg("recorded prompt and cancelled pending notifications")
	return nil
}

// handleStop finishes the newest running prompt and announces the
// completion immediately.
func (t *Tracker) handleStop(ctx context.Context, ev *Event) error {
	sessionID := deref(ev.SessionID)

	p, err := t.store.FinishLatestPrompt(ctx, sessionID)
	if err != nil {
		return err
	}
	if p == nil {
		// No running prompt; a duplicate Stop is a no-op.
		return nil
	}

	duration := FormatDuration(p.Duration())
	title := "Claude Task"
	if p.Cwd != "" {
		title = filepath.Base(p.Cwd)
	}

	err = t.notifier.Deliver(ctx, notify.Message{
		Title: title,
		Body:  fmt.Sprintf("job#%d done, duration: %s", p.Seq, duration),
		Cwd:   p.Cwd,
		Kind:  notify.KindTaskCompleted,
	})
	if err != nil {
		return err
	}

	t.log.Info().
		Str("session_id", sessionID).
		Int64("seq", p.Seq).
		Str("duration", duration).
		Msg("task completed")
	return nil
}

// handleNotification classifies the message and schedules a delayed
// notification. With a positive delay a watcher process takes over;
// with delay zero delivery happens inline through the same conditional
// update.
func (t *Tracker) handleNotification(ctx context.Context, ev *Event) error {
	sessionID := deref(ev.SessionID)
	message := deref(ev.Message)

	kind, info := Classify(message, deref(ev.ToolName))

	id, err := t.store.ScheduleNotification(ctx, sessionID, message, deref(ev.Cwd), kind, info.JSON(), t.cfg.Delay())
	if err != nil {
		return err
	}

	if t.cfg.Delay() > 0 {
		pid, err := t.spawn(id)
		if err != nil {
			// The notification stays pending; a later hook's reconcile
			// pass leaves it claimable and status shows it.
			t.log.Error().Err(err).Int64("notification_id", id).Msg("failed to spawn watcher process")
			return nil
		}
		t.log.Info().
			Str("session_id", sessionID).
			Str("type", kind).
			Int64("notification_id", id).
			Int("watcher_pid", pid).
			Dur("delay", t.cfg.Delay()).
			Msg("scheduled notification")
		return nil
	}

	return t.runner.Deliver(ctx, id)
}

// handlePostToolUse sweeps pending notifications (the session is making
// progress) and optionally reports important tool completions.
func (t *Tracker) handlePostToolUse(ctx context.Context, ev *Event) error {
	sessionID := deref(ev.SessionID)
	toolName := deref(ev.ToolName)

	if err := t.cancelPending(ctx, sessionID, "tool_activity_"+toolName); err != nil {
		return err
	}

	if importantTools[toolName] && t.cfg.Notifications.NotifyToolActivity {
		err := t.notifier.Deliver(ctx, notify.Message{
			Title:    "Tool Activity",
			Body:     toolName + " completed",
			Cwd:      deref(ev.Cwd),
			Kind:     notify.KindToolActivity,
			ToolName: toolName,
		})
		if err != nil {
			return err
		}
	}

	t.log.Info().
		Str("session_id", sessionID).
		Str("tool", toolName).
		Msg("cancelled pending notifications due to tool activity")
	return nil
}

// cancelPending cancels the session's recent pending notifications and
// terminates their watcher processes.
func (t *Tracker) cancelPending(ctx context.Context, sessionID, reason string) error {
	pids, err := t.store.CancelRecentNotifications(ctx, sessionID, t.cfg.Window())
	if err != nil {
		return err
	}
	for _, pid := range pids {
		if err := t.terminate(pid); err != nil {
			continue
		}
		t.log.Info().Int("watcher_pid", pid).Str("reason", reason).Msg("terminated watcher process")
	}
	return nil
}

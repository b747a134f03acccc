package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Notifier is the delivery pipeline: working-hours gate, transport
// availability check, then send. Nothing here returns an error: by the
// time Deliver runs the state transition has already committed, and a
// transport hiccup must not fail the hook process that triggered it.
type Notifier struct {
	sender Sender
	gate   *Gate
	log    zerolog.Logger
}

// NewNotifier wires a sender behind the working-hours gate.
func NewNotifier(sender Sender, gate *Gate, log zerolog.Logger) *Notifier {
	return &Notifier{sender: sender, gate: gate, log: log}
}

// Deliver sends the message unless the gate suppresses it or the
// transport is missing. Send failures are logged and swallowed.
func (n *Notifier) Deliver(ctx context.Context, m Message) error {
	if !n.gate.Allow() {
		n.log.Info().
			Str("title", m.Title).
			Str("kind", string(m.Kind)).
			Msg("notification suppressed - outside working hours")
		return nil
	}

	if !n.sender.Available() {
		n.log.Warn().Msg("ntfy command not found, notification skipped")
		return nil
	}

	if err := n.sender.Send(ctx, m); err != nil {
		n.log.Error().Err(err).Str("title", m.Title).Msg("notification delivery failed")
	}
	return nil
}

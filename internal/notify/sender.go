package notify

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// timestampLayout matches the body suffix format, e.g.
// "August 27, 2026 at 14:05".
const timestampLayout = "January 02, 2006 at 15:04"

// Sender dispatches a single notification.
type Sender interface {
	// Send publishes the message. The body is enriched and timestamped
	// before leaving the process.
	Send(ctx context.Context, m Message) error

	// Available reports whether the transport can deliver at all.
	Available() bool
}

// NtfyOptions configures the ntfy transport.
type NtfyOptions struct {
	Topic string
	Icon  string
	Click string
}

// NewNtfySender returns a Sender publishing through the external ntfy
// command. The message body travels on stdin so it never hits argv.
func NewNtfySender(opts NtfyOptions, log zerolog.Logger) Sender {
	return &ntfySender{opts: opts, log: log}
}

type ntfySender struct {
	opts NtfyOptions
	log  zerolog.Logger
}

func (s *ntfySender) Available() bool {
	return toolAvailable("ntfy")
}

func (s *ntfySender) Send(ctx context.Context, m Message) error {
	c := enrich(m, s.opts.Click)
	body := fmt.Sprintf("%s (%s)", c.body, time.Now().Format(timestampLayout))

	cmd := exec.CommandContext(ctx, "ntfy", publishArgs(c, s.opts)...)
	cmd.Stdin = strings.NewReader(body)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ntfy publish failed: %w: %s", err, bytes.TrimSpace(out))
	}

	s.log.Info().
		Str("title", c.title).
		Str("priority", c.priority).
		Msg("notification sent")
	return nil
}

// publishArgs assembles the ntfy publish argument list for the payload.
func publishArgs(c content, opts NtfyOptions) []string {
	args := []string{"publish", "--title", c.title, "--tags", c.tags}
	if opts.Icon != "" {
		args = append(args, "--icon", opts.Icon)
	}
	if c.click != "" {
		args = append(args, "--click", c.click)
	}
	args = append(args, "--priority", c.priority)
	if c.actions != "" {
		args = append(args, "--actions", c.actions)
	}
	return append(args, opts.Topic)
}

// toolAvailable checks if a command-line tool is available in PATH.
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// NopSender discards every message, for delivery paths that must not
// reach the network.
type NopSender struct{}

func (NopSender) Send(context.Context, Message) error { return nil }
func (NopSender) Available() bool                     { return false }

package notify

import (
	"context"
	"errors"
)

// recorderSender captures sent messages for assertions.
type recorderSender struct {
	sent      []Message
	available bool
	fail      bool
}

func (r *recorderSender) Send(_ context.Context, m Message) error {
	if r.fail {
		return errors.New("publish failed")
	}
	r.sent = append(r.sent, m)
	return nil
}

func (r *recorderSender) Available() bool { return r.available }

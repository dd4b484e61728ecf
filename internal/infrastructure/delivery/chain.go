package delivery

import (
	"context"
	"errors"

	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

var ErrAllChannelsFailed = errors.New("all delivery channels failed")

// Attempt records the outcome of one channel in a chain run.
type Attempt struct {
	Channel string
	Err     error
}

// Chain tries an ordered list of channels until one delivers. No hidden
// retry state: every attempt's outcome is returned to the caller.
type Chain struct {
	channels []Channel
}

func NewChain(channels ...Channel) *Chain {
	return &Chain{channels: channels}
}

// Prefer returns a chain with the named channel moved to the front, leaving
// the relative order of the rest intact.
func (c *Chain) Prefer(name string) *Chain {
	out := make([]Channel, 0, len(c.channels))
	for _, ch := range c.channels {
		if ch.Name() == name {
			out = append(out, ch)
		}
	}
	for _, ch := range c.channels {
		if ch.Name() != name {
			out = append(out, ch)
		}
	}
	return &Chain{channels: out}
}

// Deliver runs the chain in order. It returns the name of the channel that
// delivered plus every attempt made; if none delivered the returned error is
// ErrAllChannelsFailed.
func (c *Chain) Deliver(ctx context.Context, to phone.Number, message string) (string, []Attempt, error) {
	attempts := make([]Attempt, 0, len(c.channels))
	for _, ch := range c.channels {
		err := ch.Send(ctx, to, message)
		attempts = append(attempts, Attempt{Channel: ch.Name(), Err: err})
		if err == nil {
			return ch.Name(), attempts, nil
		}
	}
	return "", attempts, ErrAllChannelsFailed
}

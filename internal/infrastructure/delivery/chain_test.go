package delivery

import (
	"context"
	"errors"
	"testing"

	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

type stubChannel struct {
	name  string
	err   error
	calls int
	last  string
}

func (s *stubChannel) Name() string { return s.name }

func (s *stubChannel) Send(_ context.Context, _ phone.Number, message string) error {
	s.calls++
	s.last = message
	return s.err
}

func TestDeliverFirstChannelWins(t *testing.T) {
	sms := &stubChannel{name: "sms"}
	tg := &stubChannel{name: "telegram"}
	chain := NewChain(sms, tg)

	used, attempts, err := chain.Deliver(context.Background(), "+251911234567", "hello")
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if used != "sms" {
		t.Errorf("used = %q, want sms", used)
	}
	if len(attempts) != 1 {
		t.Errorf("attempts = %d, want 1", len(attempts))
	}
	if tg.calls != 0 {
		t.Errorf("telegram called %d times, want 0", tg.calls)
	}
	if sms.last != "hello" {
		t.Errorf("message = %q", sms.last)
	}
}

func TestDeliverFallsBack(t *testing.T) {
	sms := &stubChannel{name: "sms", err: errors.New("twilio 500")}
	tg := &stubChannel{name: "telegram"}
	chain := NewChain(sms, tg)

	used, attempts, err := chain.Deliver(context.Background(), "+251911234567", "hello")
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if used != "telegram" {
		t.Errorf("used = %q, want telegram", used)
	}
	if len(attempts) != 2 {
		t.Fatalf("attempts = %d, want 2", len(attempts))
	}
	if attempts[0].Channel != "sms" || attempts[0].Err == nil {
		t.Errorf("first attempt = %+v, want failed sms", attempts[0])
	}
	if attempts[1].Channel != "telegram" || attempts[1].Err != nil {
		t.Errorf("second attempt = %+v, want delivered telegram", attempts[1])
	}
}

func TestDeliverAllFail(t *testing.T) {
	sms := &stubChannel{name: "sms", err: errors.New("twilio down")}
	tg := &stubChannel{name: "telegram", err: errors.New("no chat registered")}
	chain := NewChain(sms, tg)

	used, attempts, err := chain.Deliver(context.Background(), "+251911234567", "hello")
	if !errors.Is(err, ErrAllChannelsFailed) {
		t.Fatalf("err = %v, want ErrAllChannelsFailed", err)
	}
	if used != "" {
		t.Errorf("used = %q, want empty", used)
	}
	if len(attempts) != 2 {
		t.Errorf("attempts = %d, want 2", len(attempts))
	}
	for _, a := range attempts {
		if a.Err == nil {
			t.Errorf("attempt %q recorded no error", a.Channel)
		}
	}
}

func TestPreferReorders(t *testing.T) {
	sms := &stubChannel{name: "sms"}
	tg := &stubChannel{name: "telegram"}
	chain := NewChain(sms, tg).Prefer("telegram")

	used, _, err := chain.Deliver(context.Background(), "+251911234567", "hi")
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if used != "telegram" {
		t.Errorf("used = %q, want telegram", used)
	}
	if sms.calls != 0 {
		t.Errorf("sms called %d times, want 0", sms.calls)
	}
}

func TestPreferUnknownNameKeepsOrder(t *testing.T) {
	sms := &stubChannel{name: "sms"}
	tg := &stubChannel{name: "telegram"}
	chain := NewChain(sms, tg).Prefer("pigeon")

	used, _, err := chain.Deliver(context.Background(), "+251911234567", "hi")
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if used != "sms" {
		t.Errorf("used = %q, want sms", used)
	}
}

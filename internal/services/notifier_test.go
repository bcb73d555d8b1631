package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/simucrowd/simucrowd-backend/internal/sse"
)

// loopbackBus behaves like the redis pub/sub channel: every publish is
// echoed back to the subscriber, including the instance that sent it.
type loopbackBus struct {
	onMsg   func(sse.SSEMessage)
	failing bool
}

func (b *loopbackBus) Publish(ctx context.Context, msg sse.SSEMessage) error {
	if b.failing {
		return errors.New("bus down")
	}
	if b.onMsg != nil {
		b.onMsg(msg)
	}
	return nil
}

func (b *loopbackBus) StartForwarder(ctx context.Context, onMsg func(m sse.SSEMessage)) error {
	b.onMsg = onMsg
	return nil
}

func (b *loopbackBus) Close() error { return nil }

func drainOutbound(client *sse.SSEClient) []sse.SSEMessage {
	var out []sse.SSEMessage
	for {
		select {
		case msg := <-client.Outbound:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func notifierFixture(t *testing.T) (*sse.SSEHub, *sse.SSEClient, uuid.UUID) {
	t.Helper()
	hub := sse.NewSSEHub(testLogger(t))
	userID := uuid.New()
	client := hub.NewSSEClient(userID)
	hub.AddChannel(client, sse.UserChannel(userID))
	return hub, client, userID
}

func TestNotifierDeliversOncePerEventWithBus(t *testing.T) {
	hub, client, userID := notifierFixture(t)

	bus := &loopbackBus{}
	if err := bus.StartForwarder(context.Background(), func(m sse.SSEMessage) {
		hub.Broadcast(m)
	}); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}

	notifier := NewRunNotifier(testLogger(t), hub, bus)
	notifier.CreditsChanged(userID, 5)

	got := drainOutbound(client)
	if len(got) != 1 {
		t.Fatalf("one emitted event delivered %d times to a local client, want 1", len(got))
	}
	if got[0].Event != sse.SSEEventUserCreditsChanged {
		t.Errorf("event = %q, want %q", got[0].Event, sse.SSEEventUserCreditsChanged)
	}
}

func TestNotifierDeliversOncePerEventWithoutBus(t *testing.T) {
	hub, client, userID := notifierFixture(t)

	notifier := NewRunNotifier(testLogger(t), hub, nil)
	notifier.RunProgress(userID, uuid.New(), 42, "collecting reactions")

	got := drainOutbound(client)
	if len(got) != 1 {
		t.Fatalf("delivered %d events, want 1", len(got))
	}
}

func TestNotifierFallsBackToHubWhenPublishFails(t *testing.T) {
	hub, client, userID := notifierFixture(t)

	bus := &loopbackBus{failing: true}
	notifier := NewRunNotifier(testLogger(t), hub, bus)
	notifier.RunCompleted(userID, uuid.New(), "a1")

	got := drainOutbound(client)
	if len(got) != 1 {
		t.Fatalf("delivered %d events after bus failure, want 1 local delivery", len(got))
	}
}

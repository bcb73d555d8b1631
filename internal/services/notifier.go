package services

import (
	"context"

	"github.com/google/uuid"

	redisclient "github.com/simucrowd/simucrowd-backend/internal/clients/redis"
	"github.com/simucrowd/simucrowd-backend/internal/platform/logger"
	"github.com/simucrowd/simucrowd-backend/internal/sse"
)

// RunNotifier pushes run lifecycle and credit events to the owner's SSE
// channel. When a redis bus is configured the event is also replicated to
// the other instances; delivery is best effort either way and never fails
// the run.
type RunNotifier interface {
	RunProgress(userID, sessionID uuid.UUID, progress int, stage string)
	RunCompleted(userID, sessionID uuid.UUID, analysisID string)
	RunFailed(userID, sessionID uuid.UUID, message string)
	CreditsChanged(userID uuid.UUID, balance int)
}

type runNotifier struct {
	log *logger.Logger
	hub *sse.SSEHub
	bus redisclient.EventBus
}

func NewRunNotifier(log *logger.Logger, hub *sse.SSEHub, bus redisclient.EventBus) RunNotifier {
	return &runNotifier{
		log: log.With("service", "RunNotifier"),
		hub: hub,
		bus: bus,
	}
}

func (n *runNotifier) RunProgress(userID, sessionID uuid.UUID, progress int, stage string) {
	n.emit(sse.SSEMessage{
		Channel: sse.UserChannel(userID),
		Event:   sse.SSEEventRunProgress,
		Data: map[string]any{
			"session_id": sessionID,
			"progress":   progress,
			"stage":      stage,
		},
	})
}

func (n *runNotifier) RunCompleted(userID, sessionID uuid.UUID, analysisID string) {
	n.emit(sse.SSEMessage{
		Channel: sse.UserChannel(userID),
		Event:   sse.SSEEventRunCompleted,
		Data: map[string]any{
			"session_id":  sessionID,
			"analysis_id": analysisID,
		},
	})
}

func (n *runNotifier) RunFailed(userID, sessionID uuid.UUID, message string) {
	n.emit(sse.SSEMessage{
		Channel: sse.UserChannel(userID),
		Event:   sse.SSEEventRunFailed,
		Data: map[string]any{
			"session_id": sessionID,
			"error":      message,
		},
	})
}

func (n *runNotifier) CreditsChanged(userID uuid.UUID, balance int) {
	n.emit(sse.SSEMessage{
		Channel: sse.UserChannel(userID),
		Event:   sse.SSEEventUserCreditsChanged,
		Data: map[string]any{
			"points": balance,
		},
	})
}

// emit hands the message to exactly one transport. With a bus configured
// the local delivery happens in the forwarder, which receives our own
// publish back from redis; broadcasting here as well would hand every
// event to local clients twice.
func (n *runNotifier) emit(msg sse.SSEMessage) {
	if n == nil {
		return
	}
	if n.bus != nil {
		err := n.bus.Publish(context.Background(), msg)
		if err == nil {
			return
		}
		n.log.Warn("event bus publish failed, delivering locally only", "event", msg.Event, "error", err)
	}
	if n.hub != nil {
		n.hub.Broadcast(msg)
	}
}

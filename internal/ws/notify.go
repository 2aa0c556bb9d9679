package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventSwapCreated   = "swap_created"
	EventSwapAccepted  = "swap_accepted"
	EventSwapRejected  = "swap_rejected"
	EventSwapCancelled = "swap_cancelled"
	EventSwapRated     = "swap_rated"
)

type SwapEvent struct {
	Type      string    `json:"type"`
	SwapID    uuid.UUID `json:"swap_id"`
	ActorID   uuid.UUID `json:"actor_id"`
	Timestamp string    `json:"timestamp"`
}

// Notifier pushes swap lifecycle events to the counterparty's connections.
// A nil Notifier is a no-op, so usecases can run without a hub in tests.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifySwapEvent(recipientID uuid.UUID, eventType string, swapID, actorID uuid.UUID) {
	if n == nil || n.hub == nil {
		return
	}

	evt := SwapEvent{
		Type:      eventType,
		SwapID:    swapID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.SendToUser(recipientID, b)
}

package notify

import (
	"encoding/json"
	"time"

	"github.com/finboard/finboard/internal/event_bus"
)

// EventMessage is the broker payload of a store change. Consumers fetch the record
// itself through the API when they need it.
type EventMessage struct {
	Type      string    `json:"type"`
	Id        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEventMessage converts a bus event. ok is false for events that carry no record id.
func NewEventMessage(e event_bus.Event) (EventMessage, bool) {
	changed, ok := e.Data.(event_bus.RecordChanged)
	if !ok {
		return EventMessage{}, false
	}
	return EventMessage{Type: string(e.Type), Id: changed.Id, Timestamp: e.Timestamp.UTC()}, true
}

func (m EventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

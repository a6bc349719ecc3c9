package events

import (
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/lazharichir/holdem/domain/events"
	"github.com/lazharichir/holdem/server/connection"
)

// EventEnvelope wraps an event with its name for client consumption
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher handles routing events to clients
type Dispatcher struct {
	connMgr *connection.Manager
	logger  *log.Logger
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(connMgr *connection.Manager, logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		connMgr: connMgr,
		logger:  logger,
	}
}

// HandleEvent relays domain events to the clients entitled to see them.
// Hole cards go only to their owner; everything else fans out to the table.
func (d *Dispatcher) HandleEvent(event events.Event) {
	eventPayload, err := json.Marshal(event)
	if err != nil {
		d.logger.Error("failed to marshal event payload", "event", event.Name(), "err", err)
		return
	}

	envelope := EventEnvelope{
		Name:    event.Name(),
		Payload: eventPayload,
	}
	envelopeData, err := json.Marshal(envelope)
	if err != nil {
		d.logger.Error("failed to marshal event envelope", "event", event.Name(), "err", err)
		return
	}

	d.logger.Debug("dispatching event", "event", event.Name())

	switch e := event.(type) {
	case events.HoleCardsDealt:
		d.connMgr.SendToPlayer(e.PlayerID, envelopeData)

	default:
		if tableID := events.ExtractTableID(event); tableID != "" {
			d.connMgr.SendToTable(tableID, envelopeData)
		}
	}
}

package domain

import (
	"time"

	"addressbook/internal/core/eventbus"
)

// EventKind identifies a lifecycle change
type EventKind uint8

const (
	// EventCreated fires after a new address is committed
	EventCreated EventKind = iota + 1
	// EventUpdated fires after an address update is committed
	EventUpdated
	// EventDeleted fires after a soft delete is committed
	EventDeleted
)

// String returns the wire name of the kind
func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "address.created"
	case EventUpdated:
		return "address.updated"
	case EventDeleted:
		return "address.deleted"
	default:
		return "address.unknown"
	}
}

// Event is an immutable lifecycle notification
type Event struct {
	Kind       EventKind
	AddressID  int64
	OccurredAt time.Time
}

// EventKind implements eventbus.Event
func (e Event) EventKind() EventKind { return e.Kind }

// Bus is the event bus carrying address lifecycle events
type Bus = eventbus.Bus[EventKind, Event]

// Handler reacts to an address lifecycle event
type Handler = eventbus.Handler[Event]

// NewBus returns an empty address event bus
func NewBus() *Bus { return eventbus.New[EventKind, Event]() }

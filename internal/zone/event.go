package zone

import "time"

// EventType names a zone lifecycle event.
type EventType string

const (
	EventEnter    EventType = "enter"
	EventLeave    EventType = "leave"
	EventTransfer EventType = "transfer"
)

// Event is a zone membership change, emitted after the change is applied.
type Event struct {
	Time     time.Time `json:"time"`
	Type     EventType `json:"type"`
	ZoneID   uint32    `json:"zone_id"`
	ActorID  uint32    `json:"actor_id"`
	Kind     string    `json:"kind"`
	ToZoneID uint32    `json:"to_zone_id,omitempty"`
}

// EventSink receives zone events. Record is called with the zone lock held and
// must not call back into the zone.
type EventSink interface {
	Record(ev Event)
}

type nopSink struct{}

func (nopSink) Record(Event) {}

package model

// Zone is the containing partition an actor is attached to.
// Implemented by internal/zone; the actor never owns it.
type Zone interface {
	ID() uint32
	Name() string
}

// InstanceContent is a Zone that hosts instanced content (private copy of a duty).
type InstanceContent interface {
	Zone
	InstanceContentID() uint32
}

// CellRef is a handle into the cell arena of a zone's spatial grid.
// The zero value means "not placed".
type CellRef struct {
	zoneID uint32
	slot   int32 // arena index + 1
}

// NewCellRef creates a handle for arena index idx of zone zoneID.
func NewCellRef(zoneID uint32, idx int) CellRef {
	return CellRef{zoneID: zoneID, slot: int32(idx) + 1}
}

// Valid reports whether the handle points at a cell.
func (c CellRef) Valid() bool {
	return c.slot > 0
}

// Index returns the arena index, or -1 for an empty handle.
func (c CellRef) Index() int {
	return int(c.slot) - 1
}

// ZoneID returns the zone whose grid owns the cell.
func (c CellRef) ZoneID() uint32 {
	return c.zoneID
}

package zone

import "errors"

// Sentinel errors for zone membership and transfers.
var (
	ErrActorNotInZone  = errors.New("actor not in zone")
	ErrAlreadyInZone   = errors.New("actor already in a zone")
	ErrZoneNotFound    = errors.New("zone not found")
	ErrZoneExists      = errors.New("zone already exists")
	ErrSameZone        = errors.New("source and destination zone are the same")
	ErrInvalidPosition = errors.New("invalid position")
)

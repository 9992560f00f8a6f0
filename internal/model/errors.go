package model

import "errors"

// Sentinel errors for the actor model.
var (
	ErrNonFinite     = errors.New("non-finite value")
	ErrInvalidRecord = errors.New("invalid character record")
)

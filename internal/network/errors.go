package network

import "errors"

var (
	ErrSendQueueFull    = errors.New("send queue full")
	ErrClientClosed     = errors.New("client closed")
	ErrBadTicket        = errors.New("bad session ticket")
	ErrUnexpectedPacket = errors.New("unexpected packet")
	ErrAlreadyOnline    = errors.New("character already online")
	ErrNilPacket        = errors.New("nil packet")
	ErrShuttingDown     = errors.New("server shutting down")
)

package network

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/udisondev/zonecore/internal/network/packet"
)

// Default write queue / timeout constants.
// Overridden by config values when available.
const (
	defaultSendQueueSize = 256
	defaultWriteTimeout  = 5 * time.Second
)

// frameConn is the part of *websocket.Conn the writer needs.
type frameConn interface {
	SetWriteDeadline(t time.Time) error
	NextWriter(messageType int) (io.WriteCloser, error)
	Close() error
}

// Client is the outbound side of one websocket session. It implements model.Session.
//
// Frames are queued by Send and written by a dedicated writer goroutine; frames
// queued while a write is in flight are batched into one binary message.
type Client struct {
	conn   frameConn
	remote string

	sendCh    chan *packet.Packet
	closeCh   chan struct{}
	closeOnce sync.Once
	done      chan struct{}

	writeTimeout time.Duration
}

// NewClient creates a client over conn and starts its writer.
func NewClient(conn frameConn, remote string, sendQueueSize int, writeTimeout time.Duration) *Client {
	if sendQueueSize <= 0 {
		sendQueueSize = defaultSendQueueSize
	}
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	c := &Client{
		conn:         conn,
		remote:       remote,
		sendCh:       make(chan *packet.Packet, sendQueueSize),
		closeCh:      make(chan struct{}),
		done:         make(chan struct{}),
		writeTimeout: writeTimeout,
	}
	go c.writePump()
	return c
}

// Remote returns the peer address.
func (c *Client) Remote() string {
	return c.remote
}

// Send queues pkt for async delivery.
// Non-blocking: a full queue means a slow client, which is disconnected.
func (c *Client) Send(pkt *packet.Packet) error {
	if pkt == nil {
		return ErrNilPacket
	}
	select {
	case <-c.closeCh:
		return ErrClientClosed
	default:
	}

	select {
	case c.sendCh <- pkt:
		return nil
	default:
		slog.Warn("send queue full, disconnecting slow client", "client", c.remote)
		c.CloseAsync()
		return fmt.Errorf("client %s: %w", c.remote, ErrSendQueueFull)
	}
}

// writePump drains sendCh until the client is closed or a write fails.
func (c *Client) writePump() {
	defer close(c.done)

	for {
		select {
		case pkt := <-c.sendCh:
			if err := c.write(pkt); err != nil {
				slog.Warn("write failed", "client", c.remote, "error", err)
				c.CloseAsync()
				return
			}
		case <-c.closeCh:
			return
		}
	}
}

// write sends pkt plus everything queued behind it as one binary message.
func (c *Client) write(first *packet.Packet) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return fmt.Errorf("setting write deadline: %w", err)
	}
	w, err := c.conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return fmt.Errorf("opening message: %w", err)
	}
	if _, err := w.Write(first.Bytes()); err != nil {
		_ = w.Close()
		return err
	}
	// Дописываем в то же сообщение всё, что успело накопиться в очереди
	for range len(c.sendCh) {
		if _, err := w.Write((<-c.sendCh).Bytes()); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}

// CloseAsync signals the writer to stop without blocking.
// Safe to call multiple times.
func (c *Client) CloseAsync() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
	})
}

// Close stops the writer, waits for it and closes the connection.
func (c *Client) Close() error {
	c.CloseAsync()
	<-c.done
	return c.conn.Close()
}

// Closed returns a channel closed once the client is shutting down.
func (c *Client) Closed() <-chan struct{} {
	return c.closeCh
}

package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var ErrBackpressure = errors.New("connection send buffer full")
var errConnClosed = errors.New("connection closed")

const writeDeadline = 5 * time.Second

// WSConn is an indirection over *websocket.Conn to ease testing.
type WSConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Conn adapts a websocket connection to the hub's Sink interface.
//
// Sends go through a buffered channel drained by a single write pump, so the
// hub never blocks on a slow client's network I/O: a full buffer surfaces as
// ErrBackpressure and the hub drops the connection.
type Conn struct {
	conn WSConn
	send chan []byte

	mu     sync.Mutex
	closed bool
	once   sync.Once
}

func NewConn(conn WSConn, buffer int) *Conn {
	return &Conn{
		conn: conn,
		send: make(chan []byte, buffer),
	}
}

func (c *Conn) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errConnClosed
	}
	select {
	case c.send <- payload:
		return nil
	default:
		return ErrBackpressure
	}
}

func (c *Conn) Close() {
	c.once.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()
		_ = c.conn.Close()
	})
}

// WritePump drains the send buffer to the network. It owns the transport
// resources and closes them on exit. Run it in its own goroutine.
func (c *Conn) WritePump() {
	defer c.Close()
	for payload := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// Package transport owns the TCP socket and the blocking receive loop that
// turns the wire's length-prefixed frames into payloads for the peer state
// machine, grounded in the relay client's messageReader/Serve shape but
// reworked to this protocol's framing.
package transport

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/logarithm/photon-go/internal/logger"
)

var log = logger.Default.NewFacility("transport", "TCP connection and receive loop")

const (
	stdHeaderLen = 9

	// DefaultIdleTimeout bounds each header read so the loop periodically
	// re-checks the obsolete flag even on a quiet connection.
	DefaultIdleTimeout = 30 * time.Second
)

// Sink receives classified frames from the receive loop. peer.Peer
// satisfies this interface structurally; transport never imports peer.
type Sink interface {
	HandlePayload(payload []byte)
	HandlePing(frame []byte)
	HandleError(err error)
}

// Connection owns one TCP socket and runs the blocking receive loop as a
// suture.Service. It has no dependency on the thejerf/suture package
// itself, only the Serve(ctx context.Context) error shape suture.Service
// requires, so it can be added to a Supervisor by the facade.
type Connection struct {
	conn net.Conn
	sink Sink

	idleTimeout time.Duration

	obsolete  atomic.Bool
	closeOnce sync.Once
}

// NewConnection wraps conn. idleTimeout of 0 uses DefaultIdleTimeout.
func NewConnection(conn net.Conn, sink Sink, idleTimeout time.Duration) *Connection {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Connection{conn: conn, sink: sink, idleTimeout: idleTimeout}
}

// Serve runs the receive loop until ctx is cancelled, the connection is
// marked obsolete, or a non-timeout socket error occurs. It implements
// suture.Service so a Supervisor can own its lifecycle and restarts.
func (c *Connection) Serve(ctx context.Context) error {
	defer c.Close()

	go func() {
		<-ctx.Done()
		c.Close()
	}()

	for {
		if c.obsolete.Load() {
			return nil
		}

		header := make([]byte, stdHeaderLen)
		_ = c.conn.SetReadDeadline(time.Now().Add(c.idleTimeout))
		if _, err := io.ReadFull(c.conn, header); err != nil {
			if isTimeout(err) {
				continue
			}
			if c.obsolete.Load() {
				return nil
			}
			c.obsolete.Store(true)
			c.sink.HandleError(err)
			return err
		}

		if header[0] == 0xF0 {
			c.sink.HandlePing(header)
			continue
		}

		length := binary.BigEndian.Uint32(header[1:5])
		if length < stdHeaderLen {
			c.obsolete.Store(true)
			err := errors.New("frame length shorter than header")
			c.sink.HandleError(err)
			return err
		}

		trailing := make([]byte, length-stdHeaderLen)
		if len(trailing) > 0 {
			if _, err := io.ReadFull(c.conn, trailing); err != nil {
				if c.obsolete.Load() {
					return nil
				}
				c.obsolete.Store(true)
				c.sink.HandleError(err)
				return err
			}
		}

		payload := make([]byte, 0, 2+len(trailing))
		payload = append(payload, header[7], header[8])
		payload = append(payload, trailing...)
		c.sink.HandlePayload(payload)
	}
}

// Send writes a complete framed buffer. A connection already marked
// obsolete drops the write silently, matching the original client's
// send_data behavior of not raising on a dead socket.
func (c *Connection) Send(data []byte) error {
	if c.obsolete.Load() {
		log.Debugln("dropping send on obsolete connection,", len(data), "bytes")
		return nil
	}
	if _, err := c.conn.Write(data); err != nil {
		c.obsolete.Store(true)
		return err
	}
	return nil
}

// Close marks the connection obsolete and closes the socket, unblocking
// any in-flight read. It is idempotent.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.obsolete.Store(true)
		err = c.conn.Close()
	})
	return err
}

// IsRunning reports whether the connection has not yet been marked
// obsolete.
func (c *Connection) IsRunning() bool {
	return !c.obsolete.Load()
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

package photongo

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/logarithm/photon-go/codec"
	"github.com/logarithm/photon-go/internal/peer"
	"github.com/logarithm/photon-go/internal/stats"
	"github.com/logarithm/photon-go/internal/transport"
)

// Protocol selects the wire transport. Only TCP is implemented; UDP is
// accepted by NewClient only to be rejected with ErrorKind Unsupported,
// mirroring the original client's protocol parameter.
type Protocol int

const (
	TCP Protocol = iota
	UDP
)

// Client is the facade: the mutex-guarded entry points a host calls from
// arbitrary goroutines. It owns the peer state machine and, once
// connected, a supervised Connection.
type Client struct {
	sendMu     sync.Mutex
	dispatchMu sync.Mutex
	enqueueMu  sync.Mutex

	peer    *peer.Peer
	clock   Clock
	traffic *stats.Traffic

	lifecycleMu sync.Mutex
	cancel      context.CancelFunc
	done        chan struct{}
}

// NewClient constructs a Client bound to protocol (which must be TCP) and
// listener. A nil clock defaults to SystemClock.
func NewClient(protocol Protocol, listener Listener, clock Clock) (*Client, error) {
	if protocol != TCP {
		return nil, newErr(Unsupported, "only the TCP protocol is implemented")
	}
	if clock == nil {
		clock = SystemClock{}
	}

	p := peer.New(listener, clock)
	traffic := stats.NewTraffic()
	p.SetTraffic(traffic)

	return &Client{peer: p, clock: clock, traffic: traffic}, nil
}

// Traffic exposes the Prometheus-backed outgoing traffic counters for a
// host that wants to scrape or register them.
func (c *Client) Traffic() *stats.Traffic { return c.traffic }

// SetListener replaces the event listener.
func (c *Client) SetListener(l Listener) { c.peer.SetListener(l) }

// SetDebugLevel configures which DebugReturn calls reach the listener.
func (c *Client) SetDebugLevel(level DebugLevel) { c.peer.SetDebugLevel(level) }

// SetChannelCount configures the valid channel id range [0, count) for
// OpCustom.
func (c *Client) SetChannelCount(count int) { c.peer.SetChannelCount(count) }

// State returns the peer's current lifecycle state.
func (c *Client) State() peer.State { return c.peer.State() }

// Connect dials host:port over TCP, starts the supervised receive loop and
// enqueues the handshake. appID defaults to "Lite" when empty.
func (c *Client) Connect(host string, port int, appID string) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	conn, err := net.Dial("tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return &Error{Kind: Transport, Msg: "dial failed", Err: err}
	}

	tc := transport.NewConnection(conn, c.peer, 0)

	sup := suture.New("photon-connection", suture.Spec{})
	sup.Add(tc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.lifecycleMu.Lock()
	c.cancel = cancel
	c.done = done
	c.lifecycleMu.Unlock()

	go func() {
		sup.Serve(ctx)
		c.peer.MarkDisconnected()
		close(done)
	}()

	c.peer.Connect(tc, appID)
	return nil
}

// Disconnect transitions Connected -> Disconnecting, clears the outgoing
// queue and closes the connection, letting the receive loop join on its
// own; it does not block waiting for that join (use StopThread for that).
func (c *Client) Disconnect() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.peer.Disconnect()
}

// StopThread closes the connection, cancels the supervisor and blocks
// until the receive loop has joined, waiting at most 10 seconds for that
// join.
func (c *Client) StopThread() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.peer.Disconnect()

	c.lifecycleMu.Lock()
	cancel, done := c.cancel, c.done
	c.lifecycleMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		select {
		case <-done:
		case <-time.After(10 * time.Second):
		}
	}
}

// Service drains the action and incoming-payload queues, invoking listener
// callbacks synchronously, then performs one outgoing send pass. Call this
// periodically from the host's own service loop (e.g. the game loop).
func (c *Client) Service() {
	c.dispatchMu.Lock()
	for c.peer.DispatchIncomingCommands() {
	}
	c.dispatchMu.Unlock()

	c.sendMu.Lock()
	c.peer.SendOutgoingCommands()
	c.sendMu.Unlock()
}

// OpCustom enqueues an OperationRequest for the next send pass. channelID
// must be less than the configured channel count and the peer must be
// Connected; failing either returns false and fires SendError.
func (c *Client) OpCustom(opCode byte, params codec.Parameters, reliable bool, channelID byte) bool {
	c.enqueueMu.Lock()
	defer c.enqueueMu.Unlock()
	return c.peer.EnqueueOperation(opCode, params, reliable, channelID)
}

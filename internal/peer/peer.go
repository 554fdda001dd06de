package peer

import (
	"fmt"
	"sync"

	"github.com/logarithm/photon-go/codec"
	"github.com/logarithm/photon-go/internal/frame"
	"github.com/logarithm/photon-go/internal/logger"
	"github.com/logarithm/photon-go/internal/stats"
)

var log = logger.Default.NewFacility("peer", "protocol state machine")

// Sender is the minimal contract the peer needs from a connection: hand it
// a fully framed buffer to write, or tear it down. Connection values
// satisfy this structurally; peer never imports the transport package.
type Sender interface {
	Send(data []byte) error
	Close() error
}

// DefaultChannelCount and DefaultPingInterval mirror the original client's
// BasePeer defaults.
const (
	DefaultChannelCount = 2
	DefaultPingInterval = 1000
)

// Peer is the protocol state machine: connection lifecycle, outgoing and
// incoming queues, ping/RTT tracking, handshake and message dispatch. It
// owns no socket; a Sender is handed to it by the facade once a transport
// connection exists.
type Peer struct {
	mu    sync.Mutex
	state State

	listener Listener
	clock    Clock
	traffic  *stats.Traffic

	sender    Sender
	connStart int64
	appID     string

	channelCount int
	debugLevel   DebugLevel
	warningSize  int
	pingInterval int64

	actions  actionQueue
	incoming *incomingQueue
	outgoing outgoingQueue

	rtt            *RTTEstimator
	lastRTT        float64
	lastPingSentMs int64
}

// New returns a Peer in the Disconnected state.
func New(listener Listener, clock Clock) *Peer {
	p := &Peer{
		listener:     listener,
		clock:        clock,
		state:        Disconnected,
		appID:        frame.DefaultAppID,
		channelCount: DefaultChannelCount,
		debugLevel:   DebugError,
		warningSize:  DefaultWarningSize,
		pingInterval: DefaultPingInterval,
		rtt:          NewRTTEstimator(),
	}
	p.incoming = newIncomingQueue(p.warningSize, func() {
		p.actions.push(StatusChangeAction(QueueIncomingReliableWarning))
	})
	return p
}

// SetTraffic attaches a traffic counter; nil disables counting.
func (p *Peer) SetTraffic(t *stats.Traffic) {
	p.mu.Lock()
	p.traffic = t
	p.mu.Unlock()
}

// SetChannelCount configures the valid channel id range [0, count).
func (p *Peer) SetChannelCount(count int) {
	p.mu.Lock()
	p.channelCount = count
	p.mu.Unlock()
}

// SetDebugLevel configures which debug_return calls reach the listener.
func (p *Peer) SetDebugLevel(level DebugLevel) {
	p.mu.Lock()
	p.debugLevel = level
	p.mu.Unlock()
}

// SetListener replaces the listener receiving DebugReturn/OnStatusChanged/
// OnOperationResponse/OnEvent callbacks.
func (p *Peer) SetListener(l Listener) {
	p.mu.Lock()
	p.listener = l
	p.mu.Unlock()
}

// State returns the current lifecycle state.
func (p *Peer) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Peer) debugReturn(level DebugLevel, format string, args ...interface{}) {
	p.mu.Lock()
	threshold := p.debugLevel
	p.mu.Unlock()
	if threshold < level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	p.actions.push(DebugMessageAction(int(level), msg))
}

// Connect transitions Disconnected -> Connecting, adopts sender as the
// transport, stamps the connection start time and enqueues the handshake
// frame. Calling Connect while not Disconnected is a no-op warning.
func (p *Peer) Connect(sender Sender, appID string) {
	p.mu.Lock()
	if p.state != Disconnected {
		p.mu.Unlock()
		p.debugReturn(DebugWarning, "Connect() called while not Disconnected; state=%s", p.state)
		return
	}
	if appID == "" {
		appID = frame.DefaultAppID
	}
	p.appID = appID
	p.sender = sender
	p.connStart = p.clock.NowMs()
	p.state = Connecting
	p.mu.Unlock()

	initMsg := frame.BuildInitMessage(appID)
	p.outgoing.push(initMsg)
	if p.traffic != nil {
		p.traffic.CountControl(len(initMsg))
	}
}

// Disconnect transitions Connected -> Disconnecting, drops all queued
// outgoing frames and closes the sender, which unblocks the receive loop.
// It is a no-op when already Disconnected or Disconnecting.
func (p *Peer) Disconnect() {
	p.mu.Lock()
	if p.state == Disconnected || p.state == Disconnecting {
		p.mu.Unlock()
		return
	}
	p.state = Disconnecting
	sender := p.sender
	p.mu.Unlock()

	p.outgoing.clear()
	if sender != nil {
		_ = sender.Close()
	}
}

// MarkDisconnected is called once the transport's receive loop has joined,
// completing the Any -> Disconnected transition and firing Disconnect.
func (p *Peer) MarkDisconnected() {
	p.mu.Lock()
	p.state = Disconnected
	p.mu.Unlock()
	p.actions.push(StatusChangeAction(Disconnect))
}

func (p *Peer) localMs() int64 {
	p.mu.Lock()
	start := p.connStart
	p.mu.Unlock()
	return p.clock.NowMs() - start
}

// EnqueueOperation frames and queues an OperationRequest for the next send
// pass. It fails with SendError when the peer is not Connected or when
// channelID is out of [0, channelCount) range.
func (p *Peer) EnqueueOperation(opCode byte, params codec.Parameters, reliable bool, channelID byte) bool {
	p.mu.Lock()
	state := p.state
	channelCount := p.channelCount
	p.mu.Unlock()

	if state != Connected {
		p.debugReturn(DebugError, "Cannot send op %d: not connected, state=%s", opCode, state)
		p.actions.push(StatusChangeAction(SendError))
		return false
	}
	if int(channelID) >= channelCount {
		p.debugReturn(DebugError, "Cannot send op: channel %d >= channelCount %d", channelID, channelCount)
		p.actions.push(StatusChangeAction(SendError))
		return false
	}

	payload, err := codec.SerializeOperationRequest(codec.OperationRequest{OpCode: opCode, Params: params})
	if err != nil {
		p.debugReturn(DebugError, "Error serializing operation %d: %v", opCode, err)
		return false
	}

	msg := frame.BuildOperationMessage(payload, channelID, reliable)
	p.outgoing.push(msg)
	if p.traffic != nil {
		p.traffic.CountOp(reliable, len(msg))
	}
	return true
}

// SendOutgoingCommands sends a ping if the interval has elapsed, then
// drains and writes every queued outgoing frame. Returns false if the
// transport is unavailable.
func (p *Peer) SendOutgoingCommands() bool {
	p.mu.Lock()
	state := p.state
	sender := p.sender
	interval := p.pingInterval
	p.mu.Unlock()

	if state == Disconnected || sender == nil {
		return false
	}

	if state == Connected {
		now := p.localMs()
		p.mu.Lock()
		last := p.lastPingSentMs
		p.mu.Unlock()
		if now-last > interval {
			p.sendPing(sender, now)
		}
	}

	for _, data := range p.outgoing.drain() {
		if err := sender.Send(data); err != nil {
			p.debugReturn(DebugError, "send failed: %v", err)
			continue
		}
	}
	return true
}

func (p *Peer) sendPing(sender Sender, nowMs int64) {
	p.mu.Lock()
	p.lastPingSentMs = nowMs
	p.mu.Unlock()

	pingFrame := frame.BuildPingFrame(int32(nowMs))
	if err := sender.Send(pingFrame); err != nil {
		p.debugReturn(DebugError, "ping send failed: %v", err)
		return
	}
	if p.traffic != nil {
		p.traffic.CountControl(len(pingFrame))
	}
}

// DispatchIncomingCommands drains the action queue, then pops and
// dispatches at most one payload from the incoming queue. It returns false
// when the incoming queue was empty, signaling the caller to stop looping.
func (p *Peer) DispatchIncomingCommands() bool {
	for _, a := range p.actions.drain() {
		p.runAction(a)
	}

	payload, ok := p.incoming.pop()
	if !ok {
		return false
	}

	p.dispatchPayload(payload)
	return true
}

func (p *Peer) listenerRef() Listener {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.listener
}

func (p *Peer) runAction(a Action) {
	switch a.Kind {
	case ActionDebugMessage:
		p.listenerRef().DebugReturn(DebugLevel(a.Level), a.Text)
	case ActionStatusChange:
		p.listenerRef().OnStatusChanged(a.Code)
	}
}

// HandlePayload is called by the receive loop for every non-ping frame; it
// enqueues the payload and, when the queue depth crosses a multiple of
// warningSize, pushes an incoming-queue-warning action.
func (p *Peer) HandlePayload(payload []byte) {
	if len(payload) < 1 || (payload[0] != frame.MagicOperation && payload[0] != frame.MagicOperationAlt) {
		p.debugReturn(DebugError, "unexpected payload magic byte: %v", payload)
		return
	}
	p.incoming.push(payload)
}

// HandlePing is called by the receive loop for the 9-byte ping-reply
// fast path: bytes 1..4 are server time, 5..8 are the echoed client send
// time, and the RTT sample is now - client_sent.
func (p *Peer) HandlePing(frameBytes []byte) {
	if len(frameBytes) != 9 {
		p.debugReturn(DebugError, "malformed ping reply, length %d", len(frameBytes))
		return
	}
	clientSent := int64(frameBytes[5])<<24 | int64(frameBytes[6])<<16 | int64(frameBytes[7])<<8 | int64(frameBytes[8])
	last := p.localMs() - clientSent
	p.mu.Lock()
	p.lastRTT = float64(last)
	p.mu.Unlock()
	p.rtt.Update(float64(last))
}

// LastRoundTripTime returns the most recent ping sample in milliseconds.
func (p *Peer) LastRoundTripTime() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastRTT
}

// RTT exposes the underlying estimator for diagnostics.
func (p *Peer) RTT() *RTTEstimator { return p.rtt }

// HandleError is called by the receive loop on a transport failure; it logs
// via the action queue and fires the relevant status depending on whether
// the connection was still being established.
func (p *Peer) HandleError(err error) {
	p.mu.Lock()
	connecting := p.state == Connecting
	p.mu.Unlock()

	log.Debugln("transport error:", err)
	p.debugReturn(DebugError, "transport error: %v", err)
	if connecting {
		p.actions.push(StatusChangeAction(ExceptionOnConnect))
	} else {
		p.actions.push(StatusChangeAction(Exception))
	}
}

// dispatchPayload implements §4.3's message classification table: byte 1 of
// the payload carries the 7-bit message type and the bit-7 encryption flag.
func (p *Peer) dispatchPayload(payload []byte) {
	if len(payload) < 2 {
		p.debugReturn(DebugError, "incoming data too short: %d bytes", len(payload))
		return
	}

	msgType := payload[1] & 0x7F
	encrypted := payload[1]&0x80 != 0

	body := payload
	if msgType != 1 {
		if encrypted {
			p.debugReturn(DebugError, "encrypted messages are not supported")
			return
		}
		body = payload[2:]
	}

	switch msgType {
	case 1:
		p.handleInitAck()
	case 3:
		resp, err := codec.DecodeOperationResponse(body)
		if err != nil {
			p.debugReturn(DebugError, "decode operation response: %v", err)
			return
		}
		p.listenerRef().OnOperationResponse(resp)
	case 4:
		ev, err := codec.DecodeEventData(body)
		if err != nil {
			p.debugReturn(DebugError, "decode event: %v", err)
			return
		}
		p.listenerRef().OnEvent(ev)
	case 7:
		p.debugReturn(DebugInfo, "received shared-key message, ignored")
	default:
		p.debugReturn(DebugError, "unexpected message type %d", msgType)
	}
}

func (p *Peer) handleInitAck() {
	p.mu.Lock()
	if p.state == Connecting {
		p.state = Connected
	}
	p.mu.Unlock()
	p.listenerRef().OnStatusChanged(Connect)
}

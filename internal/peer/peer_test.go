package peer

import (
	"bytes"
	"sync"
	"testing"

	"github.com/logarithm/photon-go/codec"
	"github.com/logarithm/photon-go/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now int64
}

func (c *fakeClock) NowMs() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(ms int64) {
	c.mu.Lock()
	c.now += ms
	c.mu.Unlock()
}

type fakeSender struct {
	mu     sync.Mutex
	sent   [][]byte
	closed bool
}

func (s *fakeSender) Send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := append([]byte(nil), data...)
	s.sent = append(s.sent, cp)
	return nil
}

func (s *fakeSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

type fakeListener struct {
	mu        sync.Mutex
	debugs    []string
	statuses  []StatusCode
	responses []codec.OperationResponse
	events    []codec.EventData
}

func (l *fakeListener) DebugReturn(level DebugLevel, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugs = append(l.debugs, message)
}

func (l *fakeListener) OnStatusChanged(code StatusCode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.statuses = append(l.statuses, code)
}

func (l *fakeListener) OnOperationResponse(resp codec.OperationResponse) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.responses = append(l.responses, resp)
}

func (l *fakeListener) OnEvent(ev codec.EventData) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *fakeListener) statusCount(code StatusCode) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.statuses {
		if c == code {
			n++
		}
	}
	return n
}

func newTestPeer() (*Peer, *fakeListener, *fakeClock) {
	lst := &fakeListener{}
	clk := &fakeClock{}
	p := New(lst, clk)
	return p, lst, clk
}

func TestConnectWhileConnectedLogsWarning(t *testing.T) {
	p, lst, _ := newTestPeer()
	p.SetDebugLevel(DebugWarning)
	sender := &fakeSender{}
	p.Connect(sender, "Lite")
	p.mu.Lock()
	p.state = Connected
	p.mu.Unlock()

	p.Connect(sender, "Lite")

	assert.Equal(t, Connected, p.State())
	p.DispatchIncomingCommands()
	lst.mu.Lock()
	defer lst.mu.Unlock()
	require.NotEmpty(t, lst.debugs)
}

func TestEnqueueOperationWhileDisconnectedFails(t *testing.T) {
	p, lst, _ := newTestPeer()
	ok := p.EnqueueOperation(1, codec.Parameters{}, true, 0)
	assert.False(t, ok)
	p.DispatchIncomingCommands()
	assert.Equal(t, 1, lst.statusCount(SendError))
}

func TestInitAckTransitionsToConnectedAndFiresConnectOnce(t *testing.T) {
	p, lst, _ := newTestPeer()
	sender := &fakeSender{}
	p.Connect(sender, "Lite")

	p.HandlePayload([]byte{frame.MagicOperation, 1})
	require.True(t, p.DispatchIncomingCommands())

	assert.Equal(t, Connected, p.State())
	assert.Equal(t, 1, lst.statusCount(Connect))

	more := p.DispatchIncomingCommands()
	assert.False(t, more)
}

func TestEnqueueOperationChannelOutOfRangeFails(t *testing.T) {
	p, lst, _ := newTestPeer()
	p.SetChannelCount(2)
	p.mu.Lock()
	p.state = Connected
	p.mu.Unlock()

	ok := p.EnqueueOperation(1, codec.Parameters{}, true, 99)
	assert.False(t, ok)
	p.DispatchIncomingCommands()
	assert.Equal(t, 1, lst.statusCount(SendError))
}

func TestOperationResponseRoundTripsThroughDispatch(t *testing.T) {
	p, lst, _ := newTestPeer()
	p.mu.Lock()
	p.state = Connected
	p.mu.Unlock()

	resp := codec.OperationResponse{OpCode: 230, ReturnCode: 0, Params: codec.Parameters{1: codec.String("hello")}}

	var buf bytes.Buffer
	require.NoError(t, codec.SerializeValue(&buf, resp, true))
	respBytes := buf.Bytes()[1:] // strip the OperationResponse tag byte

	// Build a type-3 payload directly: [0xF3, msgType=3, opRespBytes...]
	payload := append([]byte{frame.MagicOperation, 3}, respBytes...)

	p.HandlePayload(payload)
	require.True(t, p.DispatchIncomingCommands())

	lst.mu.Lock()
	defer lst.mu.Unlock()
	require.Len(t, lst.responses, 1)
	assert.Equal(t, resp.OpCode, lst.responses[0].OpCode)
}

func TestIncomingQueueWarningFiresOncePerHundred(t *testing.T) {
	p, lst, _ := newTestPeer()
	for i := 0; i < 100; i++ {
		p.HandlePayload([]byte{frame.MagicOperation, 4, 5, 0, 0, 0})
	}
	p.DispatchIncomingCommands()
	assert.Equal(t, 1, lst.statusCount(QueueIncomingReliableWarning))
}

func TestPingIntervalTriggersPingFrame(t *testing.T) {
	p, _, clk := newTestPeer()
	sender := &fakeSender{}
	p.mu.Lock()
	p.sender = sender
	p.state = Connected
	p.mu.Unlock()

	clk.advance(1500)
	p.SendOutgoingCommands()

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.sent, 1)
	last := sender.sent[len(sender.sent)-1]
	assert.Equal(t, frame.MagicPing, last[0])
	assert.Len(t, last, 5)
}

func TestPingReplyUpdatesRTTWithinOneMillisecond(t *testing.T) {
	p, _, clk := newTestPeer()
	sender := &fakeSender{}
	p.Connect(sender, "Lite")
	p.mu.Lock()
	p.state = Connected
	p.mu.Unlock()

	clk.advance(200)
	clientSent := p.localMs()

	clk.advance(50)
	reply := make([]byte, 9)
	reply[0] = 0xF0
	reply[5] = byte(clientSent >> 24)
	reply[6] = byte(clientSent >> 16)
	reply[7] = byte(clientSent >> 8)
	reply[8] = byte(clientSent)

	p.HandlePing(reply)
	assert.InDelta(t, 50.0, p.LastRoundTripTime(), 1.0)
}

func TestDisconnectClearsOutgoingAndClosesSender(t *testing.T) {
	p, _, _ := newTestPeer()
	sender := &fakeSender{}
	p.Connect(sender, "Lite")
	p.mu.Lock()
	p.state = Connected
	p.mu.Unlock()

	p.EnqueueOperation(1, codec.Parameters{}, true, 0)
	p.Disconnect()

	assert.Equal(t, Disconnecting, p.State())
	assert.Empty(t, p.outgoing.drain())
	assert.True(t, sender.closed)

	p.MarkDisconnected()
	assert.Equal(t, Disconnected, p.State())
}

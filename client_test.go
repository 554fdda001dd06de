package photongo

import (
	"bytes"
	"encoding/binary"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/logarithm/photon-go/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testListener struct {
	mu        sync.Mutex
	statuses  []StatusCode
	responses []codec.OperationResponse
	events    []codec.EventData
}

func (l *testListener) DebugReturn(level DebugLevel, message string) {}

func (l *testListener) OnStatusChanged(code StatusCode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.statuses = append(l.statuses, code)
}

func (l *testListener) OnOperationResponse(resp codec.OperationResponse) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.responses = append(l.responses, resp)
}

func (l *testListener) OnEvent(ev codec.EventData) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *testListener) statusCount(code StatusCode) int {
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

func readFrame(t *testing.T, conn net.Conn) []byte {
	t.Helper()
	header := make([]byte, 9)
	_, err := io.ReadFull(conn, header)
	require.NoError(t, err)
	length := binary.BigEndian.Uint32(header[1:5])
	trailing := make([]byte, length-9)
	if len(trailing) > 0 {
		_, err = io.ReadFull(conn, trailing)
		require.NoError(t, err)
	}
	return append(header, trailing...)
}

func writeStdFrame(t *testing.T, conn net.Conn, msgTypeByte byte, body []byte) {
	t.Helper()
	header := []byte{0xFB, 0, 0, 0, 0, 0, 0, 0xF3, msgTypeByte}
	msg := append(append([]byte(nil), header...), body...)
	binary.BigEndian.PutUint32(msg[1:5], uint32(len(msg)))
	_, err := conn.Write(msg)
	require.NoError(t, err)
}

func TestConnectOpAndResponseEndToEnd(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		handshake := readFrame(t, conn)
		assert.Equal(t, byte(1), handshake[6]) // reliable
		assert.Equal(t, "Lite", string(bytes.TrimRight(handshake[16:48], "\x00")))

		writeStdFrame(t, conn, 1, nil)

		opFrame := readFrame(t, conn)
		require.True(t, len(opFrame) > 9)

		resp := codec.OperationResponse{OpCode: 230, ReturnCode: 0, Params: codec.Parameters{1: codec.String("hello")}}
		var buf bytes.Buffer
		require.NoError(t, codec.SerializeValue(&buf, resp, true))
		writeStdFrame(t, conn, 3, buf.Bytes()[1:])
	}()

	lst := &testListener{}
	client, err := NewClient(TCP, lst, nil)
	require.NoError(t, err)

	addr := ln.Addr().(*net.TCPAddr)
	require.NoError(t, client.Connect("127.0.0.1", addr.Port, "Lite"))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && lst.statusCount(Connect) == 0 {
		client.Service()
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, 1, lst.statusCount(Connect))

	ok := client.OpCustom(230, codec.Parameters{1: codec.String("hello")}, true, 0)
	require.True(t, ok)

	deadline = time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(lst.responses) == 0 {
		client.Service()
		time.Sleep(5 * time.Millisecond)
	}
	require.Len(t, lst.responses, 1)
	assert.Equal(t, byte(230), lst.responses[0].OpCode)

	<-serverDone
	client.StopThread()
}

func TestOpCustomWhileDisconnectedFiresSendError(t *testing.T) {
	lst := &testListener{}
	client, err := NewClient(TCP, lst, nil)
	require.NoError(t, err)

	ok := client.OpCustom(1, codec.Parameters{}, true, 0)
	assert.False(t, ok)
	client.Service()
	assert.Equal(t, 1, lst.statusCount(SendError))
}

func TestNewClientRejectsUDP(t *testing.T) {
	_, err := NewClient(UDP, &testListener{}, nil)
	require.Error(t, err)
	var pErr *Error
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, Unsupported, pErr.Kind)
}

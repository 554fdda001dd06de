package peer

import "github.com/logarithm/photon-go/codec"

// Listener is the host-supplied collaborator the peer delivers all events
// to, synchronously and single-threaded on the dispatch goroutine.
type Listener interface {
	DebugReturn(level DebugLevel, message string)
	OnStatusChanged(code StatusCode)
	OnOperationResponse(resp codec.OperationResponse)
	OnEvent(ev codec.EventData)
}

// Clock returns a monotonic wall-clock reading in milliseconds; the peer
// derives peer-local timestamps as Clock.NowMs() - connection start.
type Clock interface {
	NowMs() int64
}

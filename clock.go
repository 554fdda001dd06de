package photongo

import (
	"time"

	"github.com/logarithm/photon-go/internal/peer"
)

// Clock returns a monotonic wall-clock reading in milliseconds. The peer
// derives peer-local timestamps as Clock.NowMs() - connection start.
type Clock = peer.Clock

// SystemClock is the default Clock, backed by the runtime's monotonic
// clock via time.Now().
type SystemClock struct{}

// clockBase anchors SystemClock readings: its wall time is the origin and
// its monotonic reading measures the elapsed time since.
var clockBase = time.Now()

// NowMs implements Clock.
func (SystemClock) NowMs() int64 {
	return clockBase.UnixMilli() + time.Since(clockBase).Milliseconds()
}

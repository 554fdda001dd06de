package peer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRTTUpdateUsesUpdatedSRTTInVarianceTerm(t *testing.T) {
	e := NewRTTEstimator()
	e.Update(100)

	wantSRTT := 100.0 / 8
	wantRTTVar := (100.0 - wantSRTT) / 4
	assert.InDelta(t, wantSRTT, e.SRTT(), 1e-9)
	assert.InDelta(t, wantRTTVar, e.RTTVar(), 1e-9)
}

func TestRTTIgnoresNegativeSamples(t *testing.T) {
	e := NewRTTEstimator()
	e.Update(50)
	srtt, rttvar := e.SRTT(), e.RTTVar()

	e.Update(-5)
	assert.Equal(t, srtt, e.SRTT())
	assert.Equal(t, rttvar, e.RTTVar())
}

func TestRTTTracksHighestVariance(t *testing.T) {
	e := NewRTTEstimator()
	e.Update(100)
	first := e.RTTVar()
	e.Update(400)
	assert.GreaterOrEqual(t, e.HighestRTTVar(), first)
}

// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePacer records every rate/cwnd the controller programs.
type fakePacer struct {
	rates []uint64
	cwnds []uint32
}

func (p *fakePacer) SetPacingRate(rate uint64) { p.rates = append(p.rates, rate) }
func (p *fakePacer) SetCWND(packets uint32)    { p.cwnds = append(p.cwnds, packets) }

func (p *fakePacer) lastRate() uint64 { return p.rates[len(p.rates)-1] }

// fakeHost drives a Controller with a monotonically advancing clock and
// simple delivered/lost/in-flight bookkeeping, standing in for a real
// transport stack across a whole test.
type fakeHost struct {
	c    *Controller
	now  Clock
	srtt Clock
	mss  uint32

	dataSegsOut uint32
	delivered   uint32
	lost        uint32
	inFlight    uint32
}

func newFakeHost(c *Controller) *fakeHost {
	return &fakeHost{c: c, srtt: 20 * Millis, mss: 1400}
}

// tick advances the clock by srtt, sends sent new packets and delivers
// delivered/lost of them, then feeds one sample.
func (h *fakeHost) tick(sent, delivered, lost uint32) {
	h.now += h.srtt
	h.dataSegsOut += sent
	h.delivered += delivered
	h.lost += lost
	h.c.OnSample(Sample{
		Now:           h.now,
		SRTT:          h.srtt,
		MSS:           h.mss,
		DataSegsOut:   h.dataSegsOut,
		Delivered:     h.delivered,
		Lost:          h.lost,
		InFlight:      h.inFlight,
		MaxPacingRate: 0,
		CwndClamp:     0,
	})
}

func TestNewControllerRequiresPacer(t *testing.T) {
	c, err := NewController(nil, Options{})
	require.Error(t, err)
	require.Nil(t, c)
}

func TestNewControllerStartsInSlowStart(t *testing.T) {
	p := &fakePacer{}
	c, err := NewController(p, Options{Utility: Allegro})
	require.NoError(t, err)
	assert.True(t, c.Valid())
	assert.Equal(t, ModeSlowStart, c.Mode())
	assert.Equal(t, initialRate, c.Rate())
	assert.NotZero(t, c.ID())
}

// TestCleanSlowStartGrows reproduces scenario 1: on a lossless link the
// first interval to close out scores above the undefined starting
// utility, so slow-start raises the rate by half and programs the pacer
// with it. The fake host delivers a fixed 20 packets per tick whatever
// the rate, so a later interval may score no better and revert the rate,
// but never below where it started.
func TestCleanSlowStartGrows(t *testing.T) {
	p := &fakePacer{}
	c, err := NewController(p, Options{Utility: Allegro})
	require.NoError(t, err)
	h := newFakeHost(c)

	startRate := c.Rate()
	for i := 0; i < 6; i++ {
		h.tick(20, 20, 0)
	}
	assert.GreaterOrEqual(t, c.Rate(), startRate)
	assert.NotEmpty(t, p.rates)
	assert.Contains(t, p.rates, startRate+startRate/2)
}

// TestLossDrivenStallExitsSlowStart reproduces scenario 2: once a batch
// of losses drags utility below the previous reading, slow-start must
// exit rather than keep growing, and it must revert to the starting
// rate rather than keep the grown rate that the loss invalidated
// (spec.md §8 scenario 2: "rate must equal starting rate").
func TestLossDrivenStallExitsSlowStart(t *testing.T) {
	p := &fakePacer{}
	c, err := NewController(p, Options{Utility: Allegro})
	require.NoError(t, err)
	h := newFakeHost(c)
	startRate := c.Rate()

	for i := 0; i < 4; i++ {
		h.tick(20, 20, 0)
	}
	require.Greater(t, c.Rate(), startRate)

	for i := 0; i < 6 && c.Mode() == ModeSlowStart; i++ {
		h.tick(20, 10, 10)
	}
	require.NotEqual(t, ModeSlowStart, c.Mode())
	assert.Equal(t, startRate, c.Rate())
}

// TestLossGateSuspendsMeasurement reproduces scenario 4: entering loss
// recovery must hold the controller in ModeLoss until the host reports
// recovery has ended.
func TestLossGateSuspendsMeasurement(t *testing.T) {
	p := &fakePacer{}
	c, err := NewController(p, Options{Utility: Allegro})
	require.NoError(t, err)

	c.OnStateChange(lossRecoveryState)
	assert.Equal(t, ModeLoss, c.Mode())

	rateBeforeExit := c.Rate()
	c.OnStateChange(0)
	assert.Equal(t, ModeProbing, c.Mode())
	assert.Equal(t, rateBeforeExit, c.Rate())
}

// TestMinimumRateClamp reproduces scenario 6: the moving-mode decider
// must never push the rate below the packets-per-RTT floor even if the
// gradient points sharply downward.
func TestMinimumRateClamp(t *testing.T) {
	p := &fakePacer{}
	c, err := NewController(p, Options{Utility: Allegro})
	require.NoError(t, err)
	c.mode = ModeMoving
	c.rate = 2000
	c.lastRate = 4000
	c.mss = 1400
	c.last = Sample{SRTT: 20 * Millis}
	c.ring.slots[0].utility = -1_000_000
	c.ring.slots[0].rate = c.rate
	c.ring.slots[0].delivered = 1
	c.ring.slots[0].recvStart = 0
	c.ring.slots[0].recvEnd = 1

	c.decideMoving()

	floor := usecPerSec * rateMinPacketsPerRTT * uint64(c.mss) / uint64(20*Millis)
	assert.GreaterOrEqual(t, c.Rate(), floor)
}

func TestOnSampleNoopWhenInvalid(t *testing.T) {
	p := &fakePacer{}
	c, err := NewController(p, Options{})
	require.NoError(t, err)
	c.Release()
	assert.False(t, c.Valid())

	before := len(p.rates)
	c.OnSample(Sample{Now: 1})
	assert.Equal(t, before, len(p.rates))
}

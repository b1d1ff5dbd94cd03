// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

import (
	"errors"
	"math/rand/v2"
)

// Controller is a single connection's PCC state machine (spec.md §2-§9).
// It is not safe for concurrent use: a host must serialize all calls to
// OnSample and OnStateChange, the same way the original kernel module
// relied on the socket lock already held by its caller.
type Controller struct {
	opts  Options
	pacer Pacer
	id    uint64
	valid bool

	mode Mode
	ring ring

	rate           uint64
	lastRate       uint64
	pacingRate     uint64
	lastDecision   direction
	decisionsCount uint64

	amplifier   int32
	swingBuffer int32
	changeBound int32

	mss          uint32
	lostBase     uint32
	deliveredBase uint32
	packetsCounted uint32
	spare        uint32

	last Sample

	randBit func() bool
}

// NewController constructs a Controller bound to pacer, starting in
// slow-start at the package's fixed initial rate. pacer is the
// Controller's only required collaborator; a nil pacer is the sole
// construction failure spec.md §7 allows for.
func NewController(pacer Pacer, opts Options) (*Controller, error) {
	if pacer == nil {
		return nil, errors.New("pcc: pacer is required")
	}

	c := &Controller{
		opts:        opts,
		pacer:       pacer,
		id:          allocID(),
		valid:       true,
		mode:        ModeSlowStart,
		rate:        initialRate,
		lastRate:    initialRate,
		amplifier:   ampMin,
		changeBound: minChangeBound,
		randBit:     defaultRandBit,
	}
	c.ring.slots[0].utility = sentinelUtility
	c.ring.layoutProbing(c.rate, c.randBit)
	c.startInterval()
	return c, nil
}

func defaultRandBit() bool {
	return rand.IntN(2) == 1
}

// Release marks the Controller invalid, pairing with the host's
// init/release lifecycle (spec.md §6): every later OnSample and
// OnStateChange call is a no-op. It frees nothing; the Controller holds
// no resources that need explicit freeing once its last reference is
// dropped.
func (c *Controller) Release() {
	c.valid = false
}

// Valid reports whether the Controller is usable. It is false only
// after Release, or if construction failed (in which case NewController
// already returned a nil *Controller and an error).
func (c *Controller) Valid() bool { return c.valid }

// Rate returns the Controller's current target sending rate, bytes/sec.
func (c *Controller) Rate() uint64 { return c.rate }

// Mode returns the Controller's current decision mode.
func (c *Controller) Mode() Mode { return c.mode }

// DecisionsCount returns the number of rate decisions made so far,
// a debug counter mirrored from spec.md §9.
func (c *Controller) DecisionsCount() uint64 { return c.decisionsCount }

// ID returns the Controller's atomically assigned debug label.
func (c *Controller) ID() uint64 { return c.id }

// OnSample feeds one host sample into the controller (spec.md §4.2). It
// never allocates and must be called with the host's connection state
// otherwise held still (no concurrent OnStateChange).
func (c *Controller) OnSample(s Sample) {
	if !c.valid {
		return
	}
	c.last = s
	c.mss = s.MSS

	c.refreshCWND()

	if c.mode == ModeLoss {
		c.lostBase = s.Lost
		c.deliveredBase = s.Delivered
		return
	}

	if !c.ring.wait {
		iv := c.ring.sending()
		if c.sendIntervalEnded(iv) {
			iv.sendEnd = s.Now
			c.startNextSendInterval()
		}
	}

	index := c.ring.recvIndex
	iv := &c.ring.slots[index]
	before := c.packetsCounted
	c.packetsCounted = s.Delivered + s.Lost - c.spare

	if iv.packetsSentBase == 0 {
		c.lostBase = s.Lost
		c.deliveredBase = s.Delivered
		return
	}

	if int64(before) > int64(ignorePackets)+int64(iv.packetsSentBase) {
		c.foldInterval(iv)
	}

	if receiveIntervalEnded(iv, c.packetsCounted) {
		c.ring.recvIndex++
		switch {
		case c.mode == ModeSlowStart:
			c.decideSlowStart()
		case c.mode == ModeMoving:
			c.decideMoving()
		case c.ring.recvIndex == numIntervals:
			c.decideProbe()
		}
	}

	c.lostBase = s.Lost
	c.deliveredBase = s.Delivered
}

// startInterval programs the pacer for the currently-sending interval
// (or maintains the current rate, if there is no scheduled interval to
// send into) and refreshes the cwnd ceiling to match (spec.md §4.1).
func (c *Controller) startInterval() {
	rate := c.rate

	if !c.ring.wait {
		iv := c.ring.sending()
		iv.reset()
		iv.packetsSentBase = c.last.DataSegsOut
		if iv.packetsSentBase < 1 {
			iv.packetsSentBase = 1
		}
		iv.sendStart = c.last.Now
		rate = iv.rate
	}

	if rate < minRate {
		rate = minRate
	}
	if c.last.MaxPacingRate > 0 && rate > c.last.MaxPacingRate {
		rate = c.last.MaxPacingRate
	}

	c.pacingRate = rate
	c.pacer.SetPacingRate(rate)
	c.refreshCWND()
}

// startNextSendInterval advances the send cursor, switching to wait
// (maintain current rate, no further interval scheduled) once probing
// has claimed all four slots, or slow-start/moving has sent its one.
func (c *Controller) startNextSendInterval() {
	c.ring.sendIndex++
	if c.ring.sendIndex == numIntervals || c.mode == ModeSlowStart || c.mode == ModeMoving {
		c.ring.wait = true
	}
	c.startInterval()
}

// refreshCWND sizes the congestion window to roughly two RTTs of data at
// the currently programmed pacing rate, floored at four packets and
// capped by the host's clamp (spec.md §4.1).
func (c *Controller) refreshCWND() {
	mss := c.mss
	if mss == 0 {
		mss = 1
	}

	cwnd := c.pacingRate * uint64(srttOrDefault(c.last.SRTT))
	cwnd /= uint64(mss)
	cwnd /= usecPerSec
	cwnd *= 2

	if cwnd < 4 {
		cwnd = 4
	}
	if c.last.CwndClamp > 0 && cwnd > uint64(c.last.CwndClamp) {
		cwnd = uint64(c.last.CwndClamp)
	}
	c.pacer.SetCWND(uint32(cwnd))
}

// foldInterval merges one sample's worth of lost/delivered counts, and
// receive-side timing, into iv (spec.md §4.2 phase 4).
func (c *Controller) foldInterval(iv *interval) {
	iv.recvEnd = c.last.Now
	iv.endRTT = srttOrDefault(c.last.SRTT)
	if iv.lost+iv.delivered == 0 {
		iv.recvStart = c.last.Now
		iv.startRTT = srttOrDefault(c.last.SRTT)
	}
	iv.lost += c.last.Lost - c.lostBase
	iv.delivered += c.last.Delivered - c.deliveredBase
}

// sendIntervalEnded reports whether enough packets have been sent into
// iv, and enough of the packets sent before it have already been
// accounted for, that the send side can advance to the next interval
// (spec.md §4.2 phase 3). It reads c.packetsCounted as it stood before
// this sample's update, matching the original's statement ordering.
func (c *Controller) sendIntervalEnded(iv *interval) bool {
	sent := int64(c.last.DataSegsOut) - int64(iv.packetsSentBase)
	if sent < intervalMinPackets {
		return false
	}
	if int64(c.packetsCounted) > int64(iv.packetsSentBase) {
		iv.packetsEnded = c.last.DataSegsOut
		return true
	}
	return false
}

// receiveIntervalEnded reports whether enough packets sent into iv have
// now been accounted for (acked or lost) to score it, allowing for a
// small margin of packets that may still be in flight.
func receiveIntervalEnded(iv *interval, packetsCounted uint32) bool {
	return iv.packetsEnded != 0 && int64(iv.packetsEnded)-ignorePackets < int64(packetsCounted)
}

// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

// OnStateChange notifies the controller of a host connection state
// transition (spec.md §4.8, §6). The only transition the core
// distinguishes is entry into, and exit from, loss recovery; every other
// state value is ignored. It is a no-op on an invalid Controller.
func (c *Controller) OnStateChange(newState State) {
	if !c.valid {
		return
	}

	switch {
	case c.mode == ModeLoss && newState != lossRecoveryState:
		c.exitLossGate()
	case c.mode != ModeLoss && newState == lossRecoveryState:
		c.enterLossGate()
	}
}

// enterLossGate suspends measurement: the controller stops folding
// samples into the current interval and holds the pacing rate steady
// until loss recovery ends.
func (c *Controller) enterLossGate() {
	c.tracef("%d loss: started", c.id)
	c.mode = ModeLoss
	c.ring.wait = true
	c.startInterval()
}

// exitLossGate reconciles the packet-accounting counters against the
// packets the host sent while measurement was suspended, so the next
// interval's lost/delivered bookkeeping doesn't attribute the gap to
// loss, then resumes in probing mode.
//
// spare absorbs the difference between "packets the host now accounts
// for as delivered, lost or still in flight" and "packets actually sent"
// so that packetsCounted (delivered+lost-spare) stays continuous across
// the gate instead of jumping by however many packets were sent during
// recovery.
func (c *Controller) exitLossGate() {
	gap := int64(c.last.Delivered) + int64(c.last.Lost) + int64(c.last.InFlight) -
		int64(c.last.DataSegsOut) - int64(c.spare)
	c.spare += uint32(gap)
	c.tracef("%d loss ended: spare %d", c.id, gap)

	c.mode = ModeProbing
	c.ring.layoutProbing(c.rate, c.randBit)
	c.startInterval()
}

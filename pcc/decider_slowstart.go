// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

// decideSlowStart grows the rate by 50% each interval as long as utility
// keeps improving, and on the first interval where it doesn't, reverts to
// the last rate that did improve and exits slow-start (spec.md §4.7).
//
// The original computes an "adjusted" utility (weighting the new and
// previous readings by whether each was positive) intended to require the
// new utility to clear roughly 75% of the growth implied by the rate
// increase, but the shipping code path never uses it and compares raw
// utility instead; this keeps the shipping behavior.
func (c *Controller) decideSlowStart() {
	iv := &c.ring.slots[0]
	prevUtility := iv.utility
	c.evalUtility(iv)
	utility := iv.utility

	if utility > prevUtility {
		c.lastRate = c.rate
		c.rate += c.rate / 2
		iv.utility = utility
		iv.rate = c.rate
		c.ring.sendIndex = 0
		c.ring.recvIndex = 0
		c.ring.wait = false
	} else {
		c.rate, c.lastRate = c.lastRate, c.rate
		c.mode = ModeProbing
		c.tracef("%d: slow-start ended at rate %d", c.id, c.rate)

		if c.opts.UseProbingAfterMoving {
			c.ring.layoutProbing(c.rate, c.randBit)
		} else {
			c.mode = ModeMoving
			c.ring.layoutMoving(c.rate)
		}
	}

	c.startInterval()
}

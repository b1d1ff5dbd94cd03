// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

// decideProbe scores all four completed intervals and runs the
// paired-comparison vote (spec.md §4.5): the first pair (slots 0,1) and
// the second pair (slots 2,3) each separately prefer their higher- or
// lower-rate half, and the vote only counts as a decision if both pairs
// agree once the antithetic rate assignment of each pair is accounted
// for. A disagreement means stay at the current rate and probe again.
func (c *Controller) decideProbe() {
	for i := range c.ring.slots {
		c.evalUtility(&c.ring.slots[i])
	}

	newRate := c.probeVote()

	if newRate != c.rate {
		c.mode = ModeMoving
		c.ring.layoutMoving(c.rate)
	} else {
		c.ring.layoutProbing(c.rate, c.randBit)
	}

	c.rate = newRate
	c.startInterval()
	c.decisionsCount++
	c.tracef("%d: probe decided rate %d", c.id, c.rate)
}

// probeVote implements the original's agreement test: run1Res and
// run2Res must match, XORed against whether the two pairs happened to be
// laid out in the same high/low order, for the pairs to be considered in
// agreement.
func (c *Controller) probeVote() uint64 {
	s := &c.ring.slots
	run1Res := s[0].utility > s[1].utility
	run2Res := s[2].utility > s[3].utility

	agree := (run1Res == run2Res) == (s[0].rate == s[2].rate)
	if !agree {
		return c.rate
	}

	if run2Res {
		c.lastRate = s[2].rate
		s[0].utility = s[2].utility
		return s[2].rate
	}
	c.lastRate = s[3].rate
	s[0].utility = s[3].utility
	return s[3].rate
}

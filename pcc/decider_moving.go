// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

// calcGrad estimates d(utility)/d(rate) between two samples, but only
// when the two rates differ by enough to keep the estimate from being
// swamped by measurement noise (spec.md §4.6).
func calcGrad(rate1 uint64, util1 int64, rate2 uint64, util2 int64) int64 {
	rateDiffRatio := Scale * (int64(rate2) - int64(rate1)) / int64(rate1)
	if rateDiffRatio < minRateDiffRatioForGrad && rateDiffRatio > -minRateDiffRatioForGrad {
		return 0
	}
	return Scale * Scale * (util2 - util1) / (int64(rate2) - int64(rate1))
}

// updateStepParams accelerates the step size while the rate keeps moving
// in the same direction it moved in last time, and resets to a cautious
// minimum the moment it reverses.
func (c *Controller) updateStepParams(step int64) {
	sameDirection := (step > 0) == (c.rate > c.lastRate)
	if sameDirection {
		if c.swingBuffer > 0 {
			c.swingBuffer--
		} else {
			c.amplifier++
		}
	} else {
		if c.swingBuffer+1 < maxSwingBuffer {
			c.swingBuffer++
		} else {
			c.swingBuffer = maxSwingBuffer
		}
		c.amplifier = ampMin
		c.changeBound = minChangeBound
	}
}

// applyChangeBound caps step as a proportion of the current rate, so a
// single noisy gradient can't swing the rate wildly; the bound itself
// relaxes a little further each time it's hit in a row.
func (c *Controller) applyChangeBound(step int64) int64 {
	if c.rate == 0 {
		return step
	}

	sign := int64(1)
	if step < 0 {
		sign = -1
	}
	step *= sign

	changeRatio := Scale * step / int64(c.rate)
	if changeRatio > int64(c.changeBound) {
		step = int64(c.rate) * int64(c.changeBound) / Scale
		c.changeBound += changeBoundStep
	} else {
		c.changeBound = minChangeBound
	}
	return sign * step
}

// decideRateMoving computes the next candidate rate via gradient ascent
// on the single interval moving-mode uses (spec.md §4.6).
func (c *Controller) decideRateMoving() uint64 {
	iv := &c.ring.slots[0]
	prevUtility := iv.utility
	c.evalUtility(iv)
	utility := iv.utility

	grad := calcGrad(c.rate, utility, c.lastRate, prevUtility)

	step := grad * gradStepSize
	c.updateStepParams(step)
	step *= int64(c.amplifier)
	step /= Scale
	step = c.applyChangeBound(step)

	minStep := int64(c.rate) * minRateDiffRatioForGrad / Scale
	minStep = minStep * 11 / 10
	switch {
	case step >= 0 && step < minStep:
		step = minStep
	case step < 0 && step > -minStep:
		step = -minStep
	}

	next := int64(c.rate) + step
	if next < 0 {
		next = 0
	}
	return uint64(next)
}

// decideMoving advances a single gradient-ascent step, then either
// re-lays the ring for another moving-mode interval (direction
// unchanged) or, if UseProbingAfterMoving is set, switches back into the
// probing vote when the direction reverses (spec.md §4.6).
func (c *Controller) decideMoving() {
	newRate := c.decideRateMoving()
	decision := directionOf(c.rate, newRate)

	packetMinRate := usecPerSec * rateMinPacketsPerRTT * uint64(c.mss) / uint64(srttOrDefault(c.last.SRTT))
	if newRate < packetMinRate {
		newRate = packetMinRate
	}

	c.lastRate = c.rate
	c.rate = newRate

	reversed := decision != c.lastDecision
	c.lastDecision = decision

	if reversed && c.opts.UseProbingAfterMoving {
		c.mode = ModeProbing
		c.ring.layoutProbing(c.rate, c.randBit)
	} else {
		c.ring.layoutMoving(c.rate)
	}

	c.startInterval()
	c.decisionsCount++
	c.tracef("%d: moving step to rate %d", c.id, c.rate)
}

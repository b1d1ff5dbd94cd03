// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

// evalUtility scores iv in place, dispatching to the configured utility
// variant (spec.md §4.3/§4.4), passing along the controller's current MSS
// and whether it is still in slow-start (Vivace suppresses some noise
// terms until the first probing/moving decision).
func (c *Controller) evalUtility(iv *interval) {
	switch c.opts.Utility {
	case Vivace:
		evalVivace(iv, c.mss, c.mode == ModeSlowStart)
	default:
		evalAllegro(iv, c.mss)
	}
}

// fixedExp returns e^(x/Scale) * Scale, truncating at each term the way
// the original kernel implementation's integer Taylor series does: each
// term's division by Scale discards any fractional remainder, and the
// series stops adding terms as soon as one truncates to zero. Never
// replace this with math.Exp; the truncation
// itself is load-bearing for matching the original's fixed-point
// behavior exactly.
func fixedExp(x int64) int64 {
	term := int64(Scale)
	sum := int64(Scale)
	for i := int64(1); term != 0; i++ {
		term *= x
		term /= i
		term /= Scale
		sum += term
	}
	return sum
}

// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedExpIsMonotonicAndAnchoredAtZero(t *testing.T) {
	assert.Equal(t, int64(Scale), fixedExp(0))
	assert.Greater(t, fixedExp(500), fixedExp(0))
	assert.Less(t, fixedExp(-500), fixedExp(0))
}

func TestEvalAllegroSentinelWhenNoPackets(t *testing.T) {
	iv := &interval{rate: 10000}
	evalAllegro(iv, 1400)
	assert.Equal(t, int64(sentinelUtility), iv.utility)
}

func TestEvalAllegroPenalizesLoss(t *testing.T) {
	clean := &interval{rate: 10000, delivered: 100, lost: 0, recvStart: 0, recvEnd: Millis * 100}
	lossy := &interval{rate: 10000, delivered: 70, lost: 30, recvStart: 0, recvEnd: Millis * 100}
	evalAllegro(clean, 1400)
	evalAllegro(lossy, 1400)
	assert.Greater(t, clean.utility, lossy.utility)
}

// TestEvalAllegroForcesZeroPastMaxLoss confirms the utility cliff at
// maxLoss actually bites: past that loss ratio, u' must be forced to
// zero (and the exponential never evaluated) rather than the scaled
// threshold being unreachable for realistic loss ratios.
func TestEvalAllegroForcesZeroPastMaxLoss(t *testing.T) {
	// 40% loss, well past lossMargin+maxLoss (15%): the throughput-discounted term
	// must be exactly the negative "wasted rate" term, with u' at zero.
	iv := &interval{rate: 10000, delivered: 60, lost: 40, recvStart: 0, recvEnd: Millis * 100}
	evalAllegro(iv, 1400)

	lossRatio := int64(40) * Scale * Alpha / 100
	wantWasted := int64(10000) * lossRatio / (Alpha * Scale)
	assert.Equal(t, -wantWasted, iv.utility)
}

func TestEvalVivaceZeroWhenNothingDelivered(t *testing.T) {
	iv := &interval{rate: 10000}
	evalVivace(iv, 1400, false)
	assert.Equal(t, int64(0), iv.utility)
}

func TestEvalVivaceSuppressesNegativeLatInflInSlowStart(t *testing.T) {
	base := interval{
		rate: 10000, delivered: 50, lost: 0,
		sendStart: 0, sendEnd: Millis * 100,
		recvStart: 0, recvEnd: Millis * 100,
		startRTT: Millis * 50, endRTT: Millis * 10,
	}
	inStartMode := base
	notStartMode := base
	evalVivace(&inStartMode, 1400, true)
	evalVivace(&notStartMode, 1400, false)
	assert.Less(t, inStartMode.utility, notStartMode.utility)
}

// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcGradIgnoresNoisyRates(t *testing.T) {
	// rates differ by less than minRateDiffRatioForGrad (2%): no signal.
	assert.Equal(t, int64(0), calcGrad(10000, 100, 10100, 200))
}

func TestCalcGradScalesWithUtilityDelta(t *testing.T) {
	grad := calcGrad(10000, 100, 20000, 300)
	assert.Greater(t, grad, int64(0))
}

func TestApplyChangeBoundCapsLargeSteps(t *testing.T) {
	c := &Controller{rate: 10000, changeBound: minChangeBound}
	bounded := c.applyChangeBound(50000)
	assert.Less(t, bounded, int64(50000))
	assert.Greater(t, c.changeBound, minChangeBound)
}

func TestApplyChangeBoundPassesSmallSteps(t *testing.T) {
	c := &Controller{rate: 10000, changeBound: minChangeBound}
	step := c.applyChangeBound(5)
	assert.Equal(t, int64(5), step)
	assert.Equal(t, minChangeBound, c.changeBound)
}

func TestUpdateStepParamsAcceleratesSameDirection(t *testing.T) {
	c := &Controller{rate: 10000, lastRate: 9000, amplifier: ampMin, swingBuffer: 0}
	c.updateStepParams(100)
	assert.Equal(t, ampMin+1, c.amplifier)
}

func TestUpdateStepParamsResetsOnReversal(t *testing.T) {
	c := &Controller{rate: 9000, lastRate: 10000, amplifier: ampMin + 3, swingBuffer: 0, changeBound: 500}
	c.updateStepParams(100)
	assert.Equal(t, ampMin, c.amplifier)
	assert.Equal(t, minChangeBound, c.changeBound)
}

// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutProbingIsAntithetic(t *testing.T) {
	var r ring
	r.layoutProbing(10000, func() bool { return false })

	assert.Equal(t, r.slots[0].rate+r.slots[1].rate, r.slots[2].rate+r.slots[3].rate)
	assert.NotEqual(t, r.slots[0].rate, r.slots[1].rate)
	assert.False(t, r.wait)
	assert.Equal(t, 0, r.sendIndex)
	assert.Equal(t, 0, r.recvIndex)
}

func TestLayoutProbingHighLowOrderFollowsRandBit(t *testing.T) {
	var r ring
	r.layoutProbing(10000, func() bool { return true })
	assert.Less(t, r.slots[0].rate, r.slots[1].rate)

	r.layoutProbing(10000, func() bool { return false })
	assert.Greater(t, r.slots[0].rate, r.slots[1].rate)
}

func TestLayoutMovingUsesSingleSlot(t *testing.T) {
	var r ring
	r.layoutMoving(5000)
	assert.Equal(t, uint64(5000), r.slots[0].rate)
	assert.False(t, r.wait)
}

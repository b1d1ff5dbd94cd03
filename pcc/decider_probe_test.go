// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestController(t *testing.T) (*Controller, *fakePacer) {
	t.Helper()
	p := &fakePacer{}
	c, err := NewController(p, Options{Utility: Allegro})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c, p
}

// TestProbeVoteAgreesOnConsistentWinner checks the agreement condition:
// when both pairs pick the higher of their two rates, and the pairs were
// laid out in the same order, the vote should move to that higher rate.
func TestProbeVoteAgreesOnConsistentWinner(t *testing.T) {
	c, _ := newTestController(t)
	c.rate = 10000
	s := &c.ring.slots
	s[0] = interval{rate: 9500, utility: 100}
	s[1] = interval{rate: 10500, utility: 200}
	s[2] = interval{rate: 9500, utility: 150}
	s[3] = interval{rate: 10500, utility: 250}

	got := c.probeVote()
	assert.Equal(t, uint64(10500), got)
}

// TestProbeVoteDisagreesStays checks that when the two pairs reach
// opposite conclusions, the controller stays at its current rate.
func TestProbeVoteDisagreesStays(t *testing.T) {
	c, _ := newTestController(t)
	c.rate = 10000
	s := &c.ring.slots
	s[0] = interval{rate: 9500, utility: 200}
	s[1] = interval{rate: 10500, utility: 100}
	s[2] = interval{rate: 9500, utility: 150}
	s[3] = interval{rate: 10500, utility: 250}

	got := c.probeVote()
	assert.Equal(t, c.rate, got)
}

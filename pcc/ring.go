// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

// interval is a single monitor interval: a bounded measurement window over
// which packets are sent at a fixed target rate, then scored by a utility
// function once enough of them have been accounted for (spec.md §3).
type interval struct {
	rate uint64 // target send rate for this interval, bytes/sec

	recvStart, recvEnd Clock
	sendStart, sendEnd Clock
	startRTT, endRTT   Clock

	packetsSentBase uint32 // DataSegsOut value when this interval started
	packetsEnded    uint32 // DataSegsOut value when the send side ended

	utility int64
	lost    uint32
	delivered uint32
}

// reset clears accumulated statistics, keeping rate and packetsSentBase
// (set separately by the caller) untouched.
func (iv *interval) reset() {
	iv.packetsEnded = 0
	iv.lost = 0
	iv.delivered = 0
}

// ring holds the fixed-size array of monitor intervals plus the two
// independent cursors into it (spec.md §3, §4.1). Sending always runs
// ahead of, or alongside, receiving; each layout rewinds both cursors to
// slot 0.
type ring struct {
	slots [numIntervals]interval

	sendIndex int
	recvIndex int

	// wait is true when there is no scheduled interval left to send into
	// (probing's four slots all claimed, or slow-start/moving's single
	// slot already sent) and the controller is only waiting for acks.
	wait bool
}

// layoutProbing assigns two antithetic (rate-low, rate-high) targets to
// each of the two interval pairs, each pair's high/low order chosen by a
// random bit, and rewinds both cursors to the start of the ring (spec.md
// §4.5). The caller supplies the random bit source; the Controller passes
// its randBit, which defaults to math/rand/v2.
func (r *ring) layoutProbing(rate uint64, randBit func() bool) {
	rateHigh := rate * (probingEpsPart + probingEps) / probingEpsPart
	rateLow := rate * (probingEpsPart - probingEps) / probingEpsPart

	for i := 0; i < numIntervals; i += 2 {
		if randBit() {
			r.slots[i].rate = rateLow
			r.slots[i+1].rate = rateHigh
		} else {
			r.slots[i].rate = rateHigh
			r.slots[i+1].rate = rateLow
		}
		r.slots[i].packetsSentBase = 0
		r.slots[i+1].packetsSentBase = 0
	}

	r.sendIndex = 0
	r.recvIndex = 0
	r.wait = false
}

// layoutMoving marks the first slot as not yet started and assigns it
// rate; it is the only slot slow-start and moving-mode ever use (spec.md
// §4.6/§4.7). Its statistics are cleared later, by startInterval.
func (r *ring) layoutMoving(rate uint64) {
	r.slots[0].packetsSentBase = 0
	r.slots[0].rate = rate
	r.sendIndex = 0
	r.recvIndex = 0
	r.wait = false
}

// sending returns the interval currently accumulating sent packets.
func (r *ring) sending() *interval {
	return &r.slots[r.sendIndex]
}

// receiving returns the interval currently accumulating acked/lost
// packets.
func (r *ring) receiving() *interval {
	return &r.slots[r.recvIndex]
}

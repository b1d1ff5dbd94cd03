// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

// Sample is the per-ACK input the host transport supplies to OnSample
// (spec.md §6). Every field is read directly off the host's connection
// state at the moment of the call. Besides the lost/delivered baselines
// and the loss-recovery spare offset, the core keeps the most recent
// Sample, which interval starts and the loss-gate exit read on later
// calls.
type Sample struct {
	// Now is the host's monotonic clock, in microseconds.
	Now Clock
	// SRTT is the host's smoothed round-trip time, in microseconds. Zero
	// is treated as 1ms (spec.md §8 boundary behavior).
	SRTT Clock
	// MSS is the maximum segment size in bytes.
	MSS uint32
	// DataSegsOut is the cumulative count of data segments sent.
	DataSegsOut uint32
	// Delivered is the cumulative count of delivered (acked) segments.
	Delivered uint32
	// Lost is the cumulative count of segments the host considers lost.
	Lost uint32
	// InFlight is the current number of packets in flight.
	InFlight uint32
	// MaxPacingRate is the host's ceiling on pacing rate, in bytes/sec.
	// Zero means unbounded.
	MaxPacingRate uint64
	// CwndClamp is the host's ceiling on the congestion window, in
	// packets. Zero means unbounded.
	CwndClamp uint32
}

// State is an opaque host connection state. The core only ever compares
// it for equality against the loss-recovery state; all other states are
// indistinguishable to it (spec.md §6, §9).
type State uint8

// srttOrDefault returns srtt, or 1ms if srtt is zero (spec.md §8).
func srttOrDefault(srtt Clock) Clock {
	if srtt == 0 {
		return Millis
	}
	return srtt
}

// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

import "math"

// Scale is the fixed-point scale used throughout for rates, ratios,
// utilities and gradients. All "fractional" quantities are integers
// multiplied by Scale; never use floating point here (spec.md design
// note: the exponential used by the Allegro utility is a truncating
// Taylor series, and sentinel-minimum handling must survive arithmetic
// unscathed).
const Scale = 1000

// Alpha is the loss-ratio weighting factor used by the Allegro utility.
const Alpha = 100

// numIntervals is the number of measurement windows in the ring. Probing
// uses all four; slow-start and moving use only slot 0.
const numIntervals = 4

// minRate is the floor below which the pacing rate is never programmed.
const minRate uint64 = 1024

// initialRate is the pacing rate a freshly constructed Controller starts
// slow-start at: 512 KiB/s.
const initialRate uint64 = minRate * 512

// rateMinPacketsPerRTT bounds the moving-mode rate floor to at least this
// many packets per RTT.
const rateMinPacketsPerRTT = 2

// probingEps/probingEpsPart: probing changes rate by probingEps percent
// (5/100) up and down of the current base rate.
const (
	probingEps     = 5
	probingEpsPart = 100
)

// intervalMinPackets is the minimum number of packets that must be sent
// into an interval before it can end (spec.md §4.2 phase 3).
const intervalMinPackets = 50

// ignorePackets discards receive-side samples that straddle an interval
// boundary, and is the minimum count of un-attributed packets remaining
// before a receive interval is considered ended. spec.md §9 notes these
// are the same constant in the original source under two different names
// (PCC_IGNORE_PACKETS and a bare literal 10); this implementation uses
// one constant for both, as spec.md requires.
const ignorePackets = 10

// lossMargin is the loss-ratio margin (5%, scaled) below which Allegro's
// utility cliff does not yet bite.
const lossMargin = 5 * Scale

// maxLoss is how far (10 points, scaled) the loss ratio may exceed
// lossMargin before Allegro's u' term is forced to zero rather than
// evaluating the exponential: from 15% loss on, u' is zero.
const maxLoss = 10 * Scale

// latInflFilter is the latency-inflation noise floor (3%, scaled) below
// which Vivace treats inflation as zero.
const latInflFilter = 30

// minRateDiffRatioForGrad is the minimum fractional rate difference (2%,
// scaled) between two samples for a gradient computation to be trusted.
const minRateDiffRatioForGrad = 20

// gradStepSize is the base step size multiplier for gradient ascent.
const gradStepSize = 25

// ampMin is the starting amplifier for gradient-ascent step size.
const ampMin int32 = 2

// maxSwingBuffer caps the number of dampened steps before the amplifier
// is allowed to grow again.
const maxSwingBuffer int32 = 2

// minChangeBound/changeBoundStep bound a moving-mode rate step as a
// proportion of the current rate (10% initially, growing by 7 points
// each time the bound is hit).
const (
	minChangeBound  int32 = 100
	changeBoundStep int32 = 70
)

// LossRecoveryState is the only host state the core distinguishes; all
// other states are treated as "not in loss recovery" (spec.md §6). It
// matches the Linux kernel's TCP_CA_Loss congestion-state code, which is
// what the original module actually compared against.
const LossRecoveryState State = 4

const lossRecoveryState = LossRecoveryState

// sentinelUtility marks an interval whose utility is undefined: either it
// has not been computed yet, or computation was impossible (no packets
// accounted for). It compares as strictly less than any real utility.
const sentinelUtility = int64(math.MinInt64)

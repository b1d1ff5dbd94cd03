// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

// evalAllegro computes the loss-only utility (spec.md §4.3): throughput
// discounted by a logistic penalty on loss ratio, minus a separate
// "wasted rate" term proportional to loss ratio directly.
func evalAllegro(iv *interval, mss uint32) {
	lost := int64(iv.lost)
	delivered := int64(iv.delivered)
	rate := int64(iv.rate)

	if lost+delivered == 0 {
		iv.utility = sentinelUtility
		return
	}

	var throughput int64
	if iv.recvStart < iv.recvEnd {
		throughput = usecPerSec * delivered * int64(mss) / int64(iv.recvEnd-iv.recvStart)
	}

	// loss ratio, scaled by Scale*Alpha.
	lossRatio := lost * Scale * Alpha / (lost + delivered)

	util := lossRatio - lossMargin
	if util < maxLoss {
		util = throughput * Scale / (fixedExp(util) + Scale)
	} else {
		util = 0
	}

	util *= Scale*Alpha - lossRatio
	util /= Scale * Alpha
	util -= rate * lossRatio / (Alpha * Scale)

	iv.utility = util
}

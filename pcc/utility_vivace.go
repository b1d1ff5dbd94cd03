// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

// evalVivace computes the loss+latency utility (spec.md §4.4): a linear
// penalty on latency inflation and loss ratio, each passed through a
// noise floor so a connection sitting at a stable operating point scores
// a stable utility rather than chasing measurement jitter. startMode
// additionally suppresses both a negative latency-inflation reading and
// any loss ratio under 10% while the controller is still in slow-start,
// since small, spurious losses there would otherwise end slow-start
// prematurely.
func evalVivace(iv *interval, mss uint32, startMode bool) {
	lost := int64(iv.lost)
	delivered := int64(iv.delivered)
	rate := int64(iv.rate)

	sendDur := int64(iv.sendEnd - iv.sendStart)
	recvDur := int64(iv.recvEnd - iv.recvStart)

	var throughput int64
	if recvDur > 0 {
		throughput = usecPerSec * delivered * int64(mss) / recvDur
	}
	if delivered == 0 {
		iv.utility = 0
		return
	}

	rttDiff := int64(iv.endRTT - iv.startRTT)
	var rttDiffThresh int64
	if throughput > 0 {
		rttDiffThresh = 2 * usecPerSec * int64(mss) / throughput
	}

	var latInfl int64
	if sendDur > 0 {
		latInfl = Scale * rttDiff / sendDur
	}

	if rttDiff < rttDiffThresh && rttDiff > -rttDiffThresh {
		latInfl = 0
	}
	if latInfl < latInflFilter && latInfl > -latInflFilter {
		latInfl = 0
	}
	if latInfl < 0 && startMode {
		latInfl = 0
	}

	lossRatio := lost * Scale / (lost + delivered)
	if startMode && lossRatio < 100 {
		lossRatio = 0
	}

	iv.utility = rate - (rate*(900*latInfl+11*lossRatio))/Scale
}

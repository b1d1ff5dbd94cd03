// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

// Package hostdemo provides a runnable stand-in for the host collaborators
// spec.md keeps external to the controller: a pacing subsystem and a
// synthetic sample source, so cmd/pccdemo can exercise pcc.Controller
// end to end without a real kernel underneath it.
package hostdemo

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/PCCproject/pcc-go/pcc"
)

// TokenBucketPacer implements pcc.Pacer over golang.org/x/time/rate,
// standing in for the kernel pacing subsystem the controller treats as
// external. SetPacingRate reconfigures the bucket's fill rate; SetCWND
// just records the latest cwnd for a caller to inspect.
type TokenBucketPacer struct {
	limiter *rate.Limiter
	cwnd    uint32
}

// NewTokenBucketPacer builds a pacer with an initial rate of zero; the
// Controller sets the real rate on its first interval.
func NewTokenBucketPacer() *TokenBucketPacer {
	return &TokenBucketPacer{limiter: rate.NewLimiter(rate.Limit(0), 1<<16)}
}

// SetPacingRate reprograms the token bucket to admit rate bytes/sec.
func (p *TokenBucketPacer) SetPacingRate(bytesPerSec uint64) {
	p.limiter.SetLimit(rate.Limit(bytesPerSec))
}

// SetCWND records the controller's current congestion window ceiling.
func (p *TokenBucketPacer) SetCWND(packets uint32) {
	p.cwnd = packets
}

// CWND returns the most recently programmed congestion window ceiling.
func (p *TokenBucketPacer) CWND() uint32 { return p.cwnd }

// AllowN reports whether n bytes may be sent now without exceeding the
// currently programmed pacing rate.
func (p *TokenBucketPacer) AllowN(n int) bool {
	return p.limiter.AllowN(time.Now(), n)
}

var _ pcc.Pacer = (*TokenBucketPacer)(nil)

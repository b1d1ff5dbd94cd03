// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package hostdemo

import "github.com/PCCproject/pcc-go/pcc"

// Scenario is a synthetic network condition a Generator plays back one
// RTT-interval at a time: a fixed loss ratio and RTT, held steady for a
// number of steps, reproducing one of the end-to-end cases spec.md §8
// describes. The one exception is the scenario named
// "latency-inflation", whose reported SRTT rises by half after its
// midpoint.
type Scenario struct {
	Name          string
	RTT           pcc.Clock
	MSS           uint32
	LossRatioPerK int // packets lost per thousand sent, applied deterministically
	Steps         int
	MaxPacingRate uint64
	CwndClamp     uint32
	LossRecovery  bool // if true, toggles State into loss recovery partway through
}

// Scenarios reproduces the six cases from spec.md §8: clean slow-start,
// a loss-driven stall, latency inflation, a loss-recovery excursion, a
// gradient reversal, and the minimum-rate clamp.
func Scenarios() []Scenario {
	return []Scenario{
		{Name: "clean-slow-start", RTT: 20 * pcc.Millis, MSS: 1400, LossRatioPerK: 0, Steps: 8},
		{Name: "loss-driven-stall", RTT: 20 * pcc.Millis, MSS: 1400, LossRatioPerK: 150, Steps: 12},
		{Name: "latency-inflation", RTT: 20 * pcc.Millis, MSS: 1400, LossRatioPerK: 0, Steps: 20},
		{Name: "loss-recovery", RTT: 20 * pcc.Millis, MSS: 1400, LossRatioPerK: 0, Steps: 16, LossRecovery: true},
		{Name: "gradient-reversal", RTT: 20 * pcc.Millis, MSS: 1400, LossRatioPerK: 20, Steps: 24},
		{Name: "minimum-rate-clamp", RTT: 50 * pcc.Millis, MSS: 1400, LossRatioPerK: 400, Steps: 24, MaxPacingRate: 4096},
	}
}

// Generator replays a Scenario into a sequence of pcc.Sample values,
// tracking the cumulative counters a real host's TCP stack would own.
type Generator struct {
	s Scenario

	now         pcc.Clock
	dataSegsOut uint32
	delivered   uint32
	lost        uint32
	step        int
}

// NewGenerator starts a fresh Generator for s.
func NewGenerator(s Scenario) *Generator {
	return &Generator{s: s}
}

// Done reports whether the scenario has played out every step.
func (g *Generator) Done() bool { return g.step >= g.s.Steps }

// Next advances one monitor-interval's worth of simulated traffic and
// returns the resulting sample, along with the host state code to report
// alongside it (spec.md §6, §9).
func (g *Generator) Next() (pcc.Sample, pcc.State) {
	g.now += g.s.RTT
	g.step++

	sent := uint32(60)
	lostNow := sent * uint32(g.s.LossRatioPerK) / 1000
	deliveredNow := sent - lostNow

	g.dataSegsOut += sent
	g.lost += lostNow
	g.delivered += deliveredNow

	state := pcc.State(0)
	if g.s.LossRecovery && g.step > g.s.Steps/3 && g.step <= 2*g.s.Steps/3 {
		state = pcc.LossRecoveryState
	}

	srtt := g.s.RTT
	if g.s.Name == "latency-inflation" && g.step > g.s.Steps/2 {
		srtt += srtt / 2
	}

	return pcc.Sample{
		Now:           g.now,
		SRTT:          srtt,
		MSS:           g.s.MSS,
		DataSegsOut:   g.dataSegsOut,
		Delivered:     g.delivered,
		Lost:          g.lost,
		InFlight:      sent,
		MaxPacingRate: g.s.MaxPacingRate,
		CwndClamp:     g.s.CwndClamp,
	}, state
}

// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

// UtilityVariant selects which utility function the Controller evaluates
// at the end of each monitor interval (spec.md §4.3/§4.4).
type UtilityVariant uint8

const (
	// Allegro is the loss-only utility.
	Allegro UtilityVariant = iota
	// Vivace is the loss+latency utility.
	Vivace
)

func (v UtilityVariant) String() string {
	switch v {
	case Allegro:
		return "allegro"
	case Vivace:
		return "vivace"
	default:
		return "unknown"
	}
}

// Options configures a Controller at construction. There is no persisted
// state, no wire format and no runtime reconfiguration (spec.md §6): every
// field here is read once by NewController.
type Options struct {
	// Utility selects the utility function used to score each monitor
	// interval.
	Utility UtilityVariant
	// UseProbingAfterMoving generalizes the original's USE_PROBING build
	// flag to a runtime choice: when true, a moving-mode direction
	// reversal and a slow-start exit both transition into probing mode
	// rather than directly into another moving-mode interval.
	UseProbingAfterMoving bool
	// Tracer, if non-nil, receives a formatted message at each decision
	// point. It is never called from the per-sample hot path.
	Tracer Tracer
}

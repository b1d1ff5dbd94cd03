// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

// Tracer is an optional debug hook, bound at construction. It is called
// at most once per decision (slow-start step, probing vote, moving step,
// loss-gate entry/exit), never from the per-sample hot path, mirroring
// the restraint the original kernel module's printk call sites show. A
// nil Tracer is a no-op.
type Tracer func(format string, args ...any)

func (c *Controller) tracef(format string, args ...any) {
	if c.opts.Tracer != nil {
		c.opts.Tracer(format, args...)
	}
}

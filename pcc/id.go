// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

import "sync/atomic"

// nextID is the source of the debug-only label assigned to each
// Controller at construction (spec.md §5/§9: "choose atomic increment").
// It exists purely to disambiguate log lines across concurrently
// constructed controllers; it has no bearing on control logic.
var nextID atomic.Uint64

func allocID() uint64 {
	return nextID.Add(1)
}

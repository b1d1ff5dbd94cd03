// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

package pcc

import "fmt"

// Clock is a host monotonic timestamp or duration, in microseconds. All
// timing fields on Sample and MonitorInterval are expressed in Clock, the
// same unit the host's kernel clock uses.
type Clock int64

// Micros is one microsecond of Clock.
const Micros Clock = 1

// Millis is one millisecond of Clock.
const Millis = 1000 * Micros

// usecPerSec is the number of microseconds in a second, used throughout
// the rate/throughput arithmetic that mixes Clock durations with
// bytes/sec rates.
const usecPerSec = 1_000_000

func (c Clock) String() string {
	return fmt.Sprintf("%dus", int64(c))
}

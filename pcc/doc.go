// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

// Package pcc implements the core of a Performance-oriented Congestion
// Control (PCC) sender: an online-learning, rate-based congestion
// controller that replaces window AIMD with an explicit utility function
// computed over bounded "monitor interval" measurement windows.
//
// The package is a pure state machine. It never touches a socket, a
// clock, or a goroutine: a host feeds it samples via OnSample, and the
// controller calls back into the Pacer the host supplies to program the
// pacing rate and congestion window. See Controller for the entry point.
package pcc

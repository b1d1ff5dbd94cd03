// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

//go:build linux

// Package tcpinfo reads a Linux socket's TCP_INFO and converts it into a
// pcc.Sample, so a real host can feed the controller from a live
// connection instead of a synthetic generator.
package tcpinfo

import (
	"syscall"
	"unsafe"

	"github.com/PCCproject/pcc-go/pcc"
)

// rawTCPInfo mirrors the layout of Linux's struct tcp_info (as of kernel
// 5.17), trimmed here to only the leading fields this package reads;
// offsets for every field up to and including dataSegsOut are stable
// across kernel versions, so the struct can stop there safely.
type rawTCPInfo struct {
	state       uint8
	caState     uint8
	retransmits uint8
	probes      uint8
	backoff     uint8
	options     uint8
	bitfield0   uint8
	bitfield1   uint8

	rto           uint32
	ato           uint32
	sndMSS        uint32
	rcvMSS        uint32
	unacked       uint32
	sacked        uint32
	lost          uint32
	retrans       uint32
	fackets       uint32
	lastDataSent  uint32
	lastAckSent   uint32
	lastDataRecv  uint32
	lastAckRecv   uint32
	pmtu          uint32
	rcvSSThresh   uint32
	rtt           uint32
	rttvar        uint32
	sndSSThresh   uint32
	sndCwnd       uint32
	advmss        uint32
	reordering    uint32
	rcvRTT        uint32
	rcvSpace      uint32
	totalRetrans  uint32
	pacingRate    uint64
	maxPacingRate uint64
	bytesAcked    uint64
	bytesReceived uint64
	segsOut       uint32
	segsIn        uint32
	notsentBytes  uint32
	minRTT        uint32
	dataSegsIn    uint32
	dataSegsOut   uint32
}

const sizeOfRawTCPInfo = uint32(unsafe.Sizeof(rawTCPInfo{}))

// Read calls getsockopt(2) for TCP_INFO on fd and converts the result
// into a pcc.Sample. now is the host's own monotonic clock reading taken
// at the same instant, since TCP_INFO carries no absolute timestamp of
// its own.
func Read(fd int, now pcc.Clock, inFlight uint32, cwndClamp uint32) (pcc.Sample, error) {
	var raw rawTCPInfo
	length := sizeOfRawTCPInfo

	_, _, errno := syscall.Syscall6(
		syscall.SYS_GETSOCKOPT,
		uintptr(fd),
		uintptr(syscall.SOL_TCP),
		uintptr(syscall.TCP_INFO),
		uintptr(unsafe.Pointer(&raw)),
		uintptr(unsafe.Pointer(&length)),
		0,
	)
	if errno != 0 {
		return pcc.Sample{}, errno
	}

	return pcc.Sample{
		Now:           now,
		SRTT:          pcc.Clock(raw.rtt),
		MSS:           raw.sndMSS,
		DataSegsOut:   raw.dataSegsOut,
		Delivered:     segsDelivered(raw),
		Lost:          raw.lost,
		InFlight:      inFlight,
		MaxPacingRate: raw.maxPacingRate,
		CwndClamp:     cwndClamp,
	}, nil
}

// segsDelivered approximates tcp_sock's delivered counter, which has no
// direct TCP_INFO field before the delivery-rate extension: acked minus
// still-unacked data segments sent is close enough for a demo host, and
// is never read by the core except as a monotonically increasing count.
func segsDelivered(raw rawTCPInfo) uint32 {
	if raw.dataSegsOut < raw.unacked {
		return 0
	}
	return raw.dataSegsOut - raw.unacked
}

// State returns the loss-recovery state code (spec.md §6, §9) TCP_INFO
// reports for this connection's congestion-state machine.
func State(fd int) (pcc.State, error) {
	var raw rawTCPInfo
	length := sizeOfRawTCPInfo
	_, _, errno := syscall.Syscall6(
		syscall.SYS_GETSOCKOPT,
		uintptr(fd),
		uintptr(syscall.SOL_TCP),
		uintptr(syscall.TCP_INFO),
		uintptr(unsafe.Pointer(&raw)),
		uintptr(unsafe.Pointer(&length)),
		0,
	)
	if errno != 0 {
		return 0, errno
	}
	return pcc.State(raw.caState), nil
}

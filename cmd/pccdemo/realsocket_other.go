// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

//go:build !linux

package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/PCCproject/pcc-go/internal/metrics"
	"github.com/PCCproject/pcc-go/pcc"
)

// runRealSocket is unavailable outside linux: internal/tcpinfo reads
// TCP_INFO via a Linux-only getsockopt layout.
func runRealSocket(log *logrus.Logger, variant pcc.UtilityVariant, coll *metrics.Collector, addr string, samples int) error {
	return fmt.Errorf("real-socket mode requires linux")
}

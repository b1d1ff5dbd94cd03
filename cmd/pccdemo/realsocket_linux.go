// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

//go:build linux

package main

import (
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/PCCproject/pcc-go/internal/hostdemo"
	"github.com/PCCproject/pcc-go/internal/metrics"
	"github.com/PCCproject/pcc-go/internal/tcpinfo"
	"github.com/PCCproject/pcc-go/pcc"
)

// runRealSocket drives a Controller from a live TCP connection's TCP_INFO
// instead of a synthetic generator, exercising internal/tcpinfo the way a
// real host's transport stack would feed the core.
func runRealSocket(log *logrus.Logger, variant pcc.UtilityVariant, coll *metrics.Collector, addr string, samples int) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return fmt.Errorf("%s did not yield a TCP connection", addr)
	}
	raw, err := tcpConn.SyscallConn()
	if err != nil {
		return fmt.Errorf("obtain raw conn: %w", err)
	}

	connID := addr
	entry := log.WithField("conn", connID).WithField("scenario", "real-socket")
	pacer := hostdemo.NewTokenBucketPacer()
	c, err := pcc.NewController(pacer, pcc.Options{
		Utility:               variant,
		UseProbingAfterMoving: true,
		Tracer: func(format string, args ...any) {
			entry.Debugf(format, args...)
		},
	})
	if err != nil {
		return fmt.Errorf("start controller: %w", err)
	}
	defer c.Release()

	coll.Add(c, []string{connID})
	defer coll.Remove(c)

	start := time.Now()
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; i < samples; i++ {
		<-ticker.C

		var sample pcc.Sample
		var state pcc.State
		var readErr error
		err := raw.Control(func(fd uintptr) {
			sample, readErr = tcpinfo.Read(int(fd), pcc.Clock(time.Since(start).Microseconds()), 0, 0)
			if readErr != nil {
				return
			}
			state, readErr = tcpinfo.State(int(fd))
		})
		if err != nil {
			return fmt.Errorf("control raw conn: %w", err)
		}
		if readErr != nil {
			return fmt.Errorf("read tcp_info: %w", readErr)
		}

		c.OnStateChange(state)
		c.OnSample(sample)
	}

	entry.WithFields(logrus.Fields{
		"final_rate":      c.Rate(),
		"final_mode":      c.Mode().String(),
		"decisions_count": c.DecisionsCount(),
	}).Info("real-socket run complete")

	return nil
}

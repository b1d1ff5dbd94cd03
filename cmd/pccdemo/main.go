// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

// Command pccdemo replays the synthetic scenarios in internal/hostdemo
// through a pcc.Controller and prints a one-line summary of how each one
// ended, exercising the controller's external interfaces the way a real
// host's transport stack would.
package main

import (
	"flag"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/PCCproject/pcc-go/internal/hostdemo"
	"github.com/PCCproject/pcc-go/internal/metrics"
	"github.com/PCCproject/pcc-go/pcc"
)

func main() {
	scenario := flag.String("scenario", "", "run only the named scenario (default: all)")
	utility := flag.String("utility", "vivace", "utility variant: allegro or vivace")
	verbose := flag.Bool("v", false, "trace every decision")
	addr := flag.String("addr", "", "dial this TCP address and drive the controller from its live TCP_INFO, instead of a synthetic scenario (linux only)")
	samples := flag.Int("samples", 100, "number of TCP_INFO samples to take in -addr mode")
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	variant := pcc.Vivace
	if *utility == "allegro" {
		variant = pcc.Allegro
	}

	reg := prometheus.NewRegistry()
	coll := metrics.NewCollector([]string{"conn"}, nil)
	reg.MustRegister(coll)

	if *addr != "" {
		if err := runRealSocket(log, variant, coll, *addr, *samples); err != nil {
			log.WithError(err).Fatal("real-socket run failed")
		}
		return
	}

	for _, s := range hostdemo.Scenarios() {
		if *scenario != "" && s.Name != *scenario {
			continue
		}
		runScenario(log, variant, coll, s)
	}
}

func runScenario(log *logrus.Logger, variant pcc.UtilityVariant, coll *metrics.Collector, s hostdemo.Scenario) {
	connID := xid.New().String()
	entry := log.WithField("conn", connID).WithField("scenario", s.Name)

	pacer := hostdemo.NewTokenBucketPacer()
	c, err := pcc.NewController(pacer, pcc.Options{
		Utility:               variant,
		UseProbingAfterMoving: true,
		Tracer: func(format string, args ...any) {
			entry.Debugf(format, args...)
		},
	})
	if err != nil {
		entry.WithError(err).Error("failed to start controller")
		return
	}
	defer c.Release()

	coll.Add(c, []string{connID})
	defer coll.Remove(c)

	gen := hostdemo.NewGenerator(s)
	for !gen.Done() {
		sample, state := gen.Next()
		c.OnStateChange(state)
		c.OnSample(sample)
	}

	entry.WithFields(logrus.Fields{
		"final_rate":      c.Rate(),
		"final_mode":      c.Mode().String(),
		"decisions_count": c.DecisionsCount(),
	}).Info("scenario complete")
}

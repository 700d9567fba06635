/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"

	"algae-monitor/algae-ml-service/internal/simulator"
	"algae-monitor/common/client"
)

var osExit = os.Exit

func main() {
	url := flag.String("url", client.DefaultInferenceURL, "base URL of the algae ml inference service")
	csvFile := flag.String("csv", "normal_rows_test_data.csv", "CSV file with the sensor rows to replay")
	interval := flag.Duration("interval", simulator.DefaultInterval, "time between two rows")
	logLevel := flag.String("loglevel", "INFO", "log level")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lc := logger.NewClient(client.AlgaeSimulatorName, *logLevel)
	code := run(ctx, simulator.NewSimulator(*url, client.Client, lc), lc, *csvFile, *interval)
	stop()
	osExit(code)
}

func run(ctx context.Context, sim *simulator.Simulator, lc logger.LoggingClient, csvFile string, interval time.Duration) int {
	lc.Infof("Starting sensor simulation from %s every %s", csvFile, interval)

	if err := sim.CheckHealth(ctx); err != nil {
		lc.Errorf("API is not running or health check failed: %v", err)
		return 1
	}
	if sim.ProbeLatest(ctx) {
		lc.Info("Latest-prediction endpoint verified")
	} else {
		lc.Warn("latest-prediction endpoint not available or no data yet")
	}

	n, err := sim.Load(csvFile)
	if err != nil {
		lc.Errorf("Failed to load CSV file: %v", err)
		return 1
	}
	lc.Infof("Loaded %d rows of test data", n)

	if err := sim.Run(ctx, interval); err != nil {
		lc.Errorf("Simulation terminated due to an error: %v", err)
		return 1
	}
	return 0
}

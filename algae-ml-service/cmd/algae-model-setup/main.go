/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package main

import (
	"flag"
	"os"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"

	"algae-monitor/algae-ml-service/pkg/artifacts"
)

var osExit = os.Exit

func main() {
	src := flag.String("src", "models", "directory holding the exported model artifacts")
	dst := flag.String("dst", "res/models", "model directory of the inference service")
	logLevel := flag.String("loglevel", "INFO", "log level")
	flag.Parse()

	lc := logger.NewClient("algae-model-setup", *logLevel)
	osExit(run(lc, *src, *dst))
}

func run(lc logger.LoggingClient, src, dst string) int {
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		lc.Errorf("Source directory '%s' not found. Please make sure the model artifacts are located there.", src)
		return 1
	}

	copied, err := artifacts.Install(src, dst, lc)
	if err != nil {
		lc.Errorf("Model setup failed: %v", err)
		return 1
	}
	lc.Infof("Successfully copied %d model files to %s", copied, dst)
	return 0
}

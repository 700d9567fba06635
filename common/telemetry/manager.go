/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package telemetry

import (
	"context"
	"strconv"
	"sync"
	"time"

	sdkinterfaces "github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/edgexfoundry/go-mod-bootstrap/v3/bootstrap/interfaces"
	"github.com/edgexfoundry/go-mod-bootstrap/v3/bootstrap/metrics"
	"github.com/pkg/errors"
)

type MetricsManager struct {
	wg         sync.WaitGroup
	MetricsMgr interfaces.MetricsManager
}

// NewMetricsManager wires the go-metrics registry to an MQTT reporter on MetricPublishTopicPrefix.
func NewMetricsManager(service sdkinterfaces.ApplicationService, serviceName string) (*MetricsManager, error) {
	lc := service.LoggingClient()

	interval, err := service.GetAppSetting("MetricReportInterval")
	if err != nil {
		lc.Errorf("failed to retrieve MetricReportInterval from configuration: %s", err.Error())
		return nil, err
	}
	seconds, err := strconv.Atoi(interval)
	if err != nil || seconds <= 0 {
		return nil, errors.Errorf("invalid MetricReportInterval %q", interval)
	}

	baseTopic, err := service.GetAppSetting("MetricPublishTopicPrefix")
	if err != nil {
		lc.Errorf("failed to retrieve MetricPublishTopicPrefix from configuration: %s", err.Error())
		return nil, err
	}
	if baseTopic == "" {
		baseTopic = "metrics"
	}

	reporter, err := NewMQTTMetricReporter(service, baseTopic, serviceName, map[string]string{"service": serviceName})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create metrics reporter")
	}

	return &MetricsManager{
		MetricsMgr: metrics.NewManager(lc, time.Duration(seconds)*time.Second, reporter),
	}, nil
}

// Run starts periodic reporting until ctx is cancelled.
func (s *MetricsManager) Run(ctx context.Context) {
	s.MetricsMgr.Run(ctx, &s.wg)
}

func (s *MetricsManager) Wait() {
	s.wg.Wait()
}

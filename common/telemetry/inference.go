/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package telemetry

import (
	"os"
	"time"

	"github.com/edgexfoundry/go-mod-bootstrap/v3/bootstrap/interfaces"
	gometrics "github.com/rcrowley/go-metrics"
)

// InferenceTelemetry counts predictions, their outcomes and how long they take.
type InferenceTelemetry struct {
	Predictions      gometrics.Counter
	PredictionErrors gometrics.Counter
	SensorFaults     gometrics.Counter
	RowAnomalies     gometrics.Counter
	Duration         gometrics.Timer
}

// NewInferenceTelemetry creates the metrics and registers them when a metrics manager is available.
func NewInferenceTelemetry(serviceName string, metricsManager interfaces.MetricsManager) *InferenceTelemetry {
	t := &InferenceTelemetry{
		Predictions:      gometrics.NewCounter(),
		PredictionErrors: gometrics.NewCounter(),
		SensorFaults:     gometrics.NewCounter(),
		RowAnomalies:     gometrics.NewCounter(),
		Duration:         gometrics.NewTimer(),
	}
	if metricsManager == nil {
		return t
	}

	hostName, _ := os.Hostname()
	tags := map[string]string{
		"service": serviceName,
		"host":    hostName,
	}
	_ = metricsManager.Register(PredictionsCount, t.Predictions, tags)
	_ = metricsManager.Register(PredictionErrorsCount, t.PredictionErrors, tags)
	_ = metricsManager.Register(SensorFaultsCount, t.SensorFaults, tags)
	_ = metricsManager.Register(RowAnomaliesCount, t.RowAnomalies, tags)
	_ = metricsManager.Register(PredictionDuration, t.Duration, tags)
	return t
}

func (t *InferenceTelemetry) ObservePrediction(faults int, anomaly bool, started time.Time) {
	t.Predictions.Inc(1)
	t.SensorFaults.Inc(int64(faults))
	if anomaly {
		t.RowAnomalies.Inc(1)
	}
	t.Duration.UpdateSince(started)
}

func (t *InferenceTelemetry) ObserveError() {
	t.PredictionErrors.Inc(1)
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package telemetry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	sdkinterfaces "github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/edgexfoundry/go-mod-core-contracts/v3/common"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	gometrics "github.com/rcrowley/go-metrics"

	"algae-monitor/common/service"
)

// Sample is one reported metric value.
type Sample struct {
	Name      string `json:"name"`
	TimeStamp int64  `json:"timestamp"`
	Value     string `json:"value"`
	ValueType string `json:"valueType"`
}

type MetricGroup struct {
	Tags    map[string]interface{} `json:"tags"`
	Samples []Sample               `json:"samples"`
}

type Metrics struct {
	IsCompressed bool        `json:"isCompressed"`
	MetricGroup  MetricGroup `json:"metricGroup"`
}

// MQTTMetricReporter publishes the service's algae_ metrics whenever their value changes.
type MQTTMetricReporter struct {
	service           sdkinterfaces.ApplicationService
	serviceName       string
	topic             string
	tags              map[string]string
	mqttSender        service.MqttSender
	mu                sync.Mutex
	lastReportedValue map[string]string
}

func NewMQTTMetricReporter(
	svc sdkinterfaces.ApplicationService,
	baseTopic string,
	serviceName string,
	tags map[string]string,
) (*MQTTMetricReporter, error) {
	topic := baseTopic + "/" + serviceName
	sender, err := service.NewMqttSender(svc, topic, serviceName+"-metrics", false)
	if err != nil {
		return nil, err
	}
	return newMQTTMetricReporter(svc, topic, serviceName, tags, sender), nil
}

func newMQTTMetricReporter(
	svc sdkinterfaces.ApplicationService,
	topic string,
	serviceName string,
	tags map[string]string,
	sender service.MqttSender,
) *MQTTMetricReporter {
	return &MQTTMetricReporter{
		service:           svc,
		serviceName:       serviceName,
		topic:             topic,
		tags:              tags,
		mqttSender:        sender,
		lastReportedValue: make(map[string]string),
	}
}

func (r *MQTTMetricReporter) Report(
	registry gometrics.Registry,
	metricTags map[string]map[string]string,
) error {
	var errs error
	lc := r.service.LoggingClient()

	if r.mqttSender == nil {
		return errors.New("mqtt client not available. Unable to report metrics")
	}

	metricGroup := MetricGroup{
		Tags:    make(map[string]interface{}),
		Samples: make([]Sample, 0),
	}
	for key, value := range r.tags {
		metricGroup.Tags[key] = value
	}

	now := time.Now().UnixNano()
	registry.Each(func(name string, item interface{}) {
		if !strings.HasPrefix(name, MetricPrefix) {
			return
		}
		var value, valueType string
		switch metric := item.(type) {
		case gometrics.Counter:
			count := metric.Count()
			if count == 0 {
				return
			}
			if count >= (math.MaxInt64 - 1000) {
				lc.Warnf("Resetting counter '%s' with value: %d to avoid overflow", name, count)
				metric.Clear()
			}
			value, valueType = strconv.FormatInt(count, 10), common.ValueTypeInt64
		case gometrics.Gauge:
			value, valueType = strconv.FormatInt(metric.Value(), 10), common.ValueTypeInt64
		case gometrics.Timer:
			if metric.Count() == 0 {
				return
			}
			// mean duration in milliseconds
			mean := metric.Mean() / float64(time.Millisecond)
			value, valueType = strconv.FormatFloat(mean, 'f', -1, 64), common.ValueTypeFloat64
		default:
			errs = multierror.Append(errs, fmt.Errorf("metric type %T not supported", metric))
			return
		}

		r.mu.Lock()
		lastValue, exists := r.lastReportedValue[name]
		if !exists || lastValue != value {
			metricGroup.Samples = append(metricGroup.Samples, Sample{
				Name:      name,
				TimeStamp: now,
				Value:     value,
				ValueType: valueType,
			})
			r.lastReportedValue[name] = value
		}
		r.mu.Unlock()

		for key, tag := range metricTags[name] {
			if _, ok := metricGroup.Tags[key]; !ok {
				metricGroup.Tags[key] = tag
			}
		}
	})

	if len(metricGroup.Samples) == 0 {
		lc.Debugf("No telemetry metrics to publish.")
		return errs
	}

	metrics := Metrics{MetricGroup: metricGroup}
	ok, result := r.mqttSender.MQTTSend(r.service.BuildContext(uuid.NewString(), common.ContentTypeJSON), metrics)
	if !ok {
		lc.Errorf("Error publishing telemetry data to MQTT: %v", result)
		errs = multierror.Append(errs, fmt.Errorf("failed to publish telemetry to topic '%s': %v", r.topic, result))
		return errs
	}
	lc.Debugf("Published %d telemetry metrics to '%s'", len(metricGroup.Samples), r.topic)
	return errs
}

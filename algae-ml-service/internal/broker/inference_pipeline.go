/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package broker

import (
	"errors"
	"fmt"
	"time"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/edgexfoundry/go-mod-core-contracts/v3/common"
	"github.com/edgexfoundry/go-mod-core-contracts/v3/dtos"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	"algae-monitor/algae-ml-service/internal/config"
	"algae-monitor/algae-ml-service/internal/state"
	"algae-monitor/algae-ml-service/pkg/dto"
	"algae-monitor/algae-ml-service/pkg/features"
	"algae-monitor/algae-ml-service/pkg/prediction"
	"algae-monitor/common/service"
	"algae-monitor/common/telemetry"
)

// DeviceRecord is a sensor record taken from one device event.
type DeviceRecord struct {
	DeviceName  string
	ProfileName string
	Record      features.Record
}

type DevicePrediction struct {
	DeviceRecord
	Result    *dto.SystemStatusResponse
	Threshold float64
}

// AlgaeInferencing runs device events from the message bus through the predictor.
type AlgaeInferencing struct {
	predictor  *prediction.Predictor
	store      *state.StatusStore
	telemetry  *telemetry.InferenceTelemetry
	cfg        *config.InferenceConfig
	mqttSender service.MqttSender
	lc         logger.LoggingClient
}

func NewAlgaeInferencing(
	svc interfaces.ApplicationService,
	cfg *config.InferenceConfig,
	predictor *prediction.Predictor,
	store *state.StatusStore,
	tel *telemetry.InferenceTelemetry,
	mqttSender service.MqttSender,
) *AlgaeInferencing {
	return &AlgaeInferencing{
		predictor:  predictor,
		store:      store,
		telemetry:  tel,
		cfg:        cfg,
		mqttSender: mqttSender,
		lc:         svc.LoggingClient(),
	}
}

func (inf *AlgaeInferencing) FilterBySensorProfile(ctx interfaces.AppFunctionContext, data interface{}) (bool, interface{}) {
	if data == nil {
		return false, errors.New("no Event Received")
	}
	event, ok := data.(dtos.Event)
	if !ok {
		ctx.LoggingClient().Info("Skipping event processing in FilterBySensorProfile")
		return false, nil
	}
	if event.ProfileName != inf.cfg.SensorProfileName {
		return false, nil
	}
	return true, event
}

// ConvertToRecord maps the event readings onto a sensor record. Empty, NaN and
// unreadable values become explicit missing markers.
func (inf *AlgaeInferencing) ConvertToRecord(ctx interfaces.AppFunctionContext, data interface{}) (bool, interface{}) {
	event, ok := data.(dtos.Event)
	if !ok {
		return false, fmt.Errorf("unexpected type %T in ConvertToRecord", data)
	}
	lc := ctx.LoggingClient()

	record := make(features.Record, len(event.Readings)+1)
	for _, reading := range event.Readings {
		categorical := reading.ResourceName == features.AlgaeTypeField || reading.ValueType == common.ValueTypeString
		value, err := features.ParseReading(reading.Value, categorical)
		if err != nil {
			lc.Warnf("device %s: unreadable value %q for %s, treating it as missing", event.DeviceName, reading.Value, reading.ResourceName)
			value = features.Missing()
		}
		record.Set(reading.ResourceName, value)
	}

	if v, found := record[features.AlgaeTypeField]; !found || v.Missing {
		algaeType := cast.ToString(event.Tags[features.AlgaeTypeField])
		if algaeType == "" {
			return false, fmt.Errorf("event from device %s carries no %s", event.DeviceName, features.AlgaeTypeField)
		}
		record[features.AlgaeTypeField] = features.Category(algaeType)
	}

	return true, DeviceRecord{
		DeviceName:  event.DeviceName,
		ProfileName: event.ProfileName,
		Record:      record,
	}
}

// Predict scores the record against the threshold currently in force and keeps it as the latest prediction.
func (inf *AlgaeInferencing) Predict(ctx interfaces.AppFunctionContext, data interface{}) (bool, interface{}) {
	deviceRecord, ok := data.(DeviceRecord)
	if !ok {
		return false, fmt.Errorf("unexpected type %T in Predict", data)
	}

	started := time.Now()
	threshold := inf.store.Threshold()
	result, err := inf.predictor.Predict(deviceRecord.Record, prediction.Options{TopN: inf.cfg.DefaultTopN, Threshold: &threshold})
	if err != nil {
		inf.telemetry.ObserveError()
		ctx.LoggingClient().Errorf("prediction failed for device %s: %v", deviceRecord.DeviceName, err)
		return false, err
	}
	inf.telemetry.ObservePrediction(len(result.SensorFaults), result.RowAnomaly, started)
	inf.store.RecordPrediction(deviceRecord.Record.ToMap(), result)

	ctx.LoggingClient().Debugf("device %s: faults %v, anomaly %t, score %f", deviceRecord.DeviceName, result.SensorFaults, result.RowAnomaly, result.RowScore)
	return true, DevicePrediction{DeviceRecord: deviceRecord, Result: result, Threshold: threshold}
}

func (inf *AlgaeInferencing) PublishPrediction(ctx interfaces.AppFunctionContext, data interface{}) (bool, interface{}) {
	devicePrediction, ok := data.(DevicePrediction)
	if !ok {
		return false, fmt.Errorf("unexpected type %T in PublishPrediction", data)
	}

	algaePrediction := BuildAlgaePrediction(devicePrediction, ctx.CorrelationID())
	if inf.mqttSender == nil {
		inf.lc.Warnf("no MQTT export configured, prediction %s for device %s not published", algaePrediction.Id, algaePrediction.DeviceName)
		return true, algaePrediction
	}

	ok, result := inf.mqttSender.MQTTSend(ctx, algaePrediction)
	if !ok {
		inf.lc.Errorf("failed to publish prediction for device %s: %v", algaePrediction.DeviceName, result)
		return false, fmt.Errorf("failed to publish prediction for device %s", algaePrediction.DeviceName)
	}
	inf.lc.Debugf("prediction %s for device %s published", algaePrediction.Id, algaePrediction.DeviceName)
	return true, algaePrediction
}

func BuildAlgaePrediction(p DevicePrediction, correlationId string) dto.AlgaePrediction {
	return dto.AlgaePrediction{
		Id:                 uuid.NewString(),
		CorrelationId:      correlationId,
		DeviceName:         p.DeviceName,
		ProfileName:        p.ProfileName,
		SensorFaults:       p.Result.SensorFaults,
		SensorExplanations: p.Result.SensorExplanations,
		RowAnomaly:         p.Result.RowAnomaly,
		RowScore:           p.Result.RowScore,
		RowTopFeatures:     p.Result.RowTopFeatures,
		AnomalyThreshold:   p.Threshold,
		Created:            time.Now().UnixMilli(),
	}
}

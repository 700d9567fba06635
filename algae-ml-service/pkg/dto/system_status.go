/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package dto

// SystemStatusResponse is the combined result of the sensor fault classifier and the row anomaly scorer.
type SystemStatusResponse struct {
	SensorFaults       []string                      `json:"sensor_faults"`
	SensorExplanations map[string]map[string]float64 `json:"sensor_explanations"`
	RowAnomaly         bool                          `json:"row_anomaly"`
	RowScore           float64                       `json:"row_score"`
	RowTopFeatures     map[string]float64            `json:"row_top_features"`
}

// LatestPrediction is the last request/result pair seen by the service.
type LatestPrediction struct {
	InputData               map[string]interface{} `json:"input_data"`
	PredictionResult        *SystemStatusResponse  `json:"prediction_result"`
	CurrentAnomalyThreshold float64                `json:"current_anomaly_threshold"`
}

type ThresholdResponse struct {
	Threshold float64 `json:"threshold"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ScoreQuantilesResponse struct {
	Count     uint64             `json:"count"`
	Quantiles map[string]float64 `json:"quantiles"`
}

// AlgaePrediction is published on the message bus for every prediction made from a device event.
type AlgaePrediction struct {
	Id                 string                        `json:"id"                            codec:"id"`
	CorrelationId      string                        `json:"correlation_id,omitempty"      codec:"correlation_id,omitempty"`
	DeviceName         string                        `json:"device_name"                   codec:"device_name"`
	ProfileName        string                        `json:"profile_name,omitempty"        codec:"profile_name,omitempty"`
	SensorFaults       []string                      `json:"sensor_faults"                 codec:"sensor_faults"`
	SensorExplanations map[string]map[string]float64 `json:"sensor_explanations,omitempty" codec:"sensor_explanations,omitempty"`
	RowAnomaly         bool                          `json:"row_anomaly"                   codec:"row_anomaly"`
	RowScore           float64                       `json:"row_score"                     codec:"row_score"`
	RowTopFeatures     map[string]float64            `json:"row_top_features,omitempty"    codec:"row_top_features,omitempty"`
	AnomalyThreshold   float64                       `json:"anomaly_threshold"             codec:"anomaly_threshold"`
	Created            int64                         `json:"created"                       codec:"created"`
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package client

// Constants related to how services identify themselves in the Service Registry
const (
	ServiceKeyAlgaePrefix = "app-algae-"

	// ServiceNames
	AlgaeMLInferenceServiceName = "algae-ml-inference"
	AlgaeSimulatorName          = "algae-sensor-simulator"

	// ServiceKeys - note that the service key should start with app- for appservices
	AlgaeMLInferenceServiceKey = "app-algae-ml-inference"
)

const (
	DefaultInferenceURL  = "http://localhost:48120"
	APIBasePath          = "/api/v3/algae"
	PredictPath          = APIBasePath + "/predict"
	HealthPath           = APIBasePath + "/health"
	LatestPredictionPath = APIBasePath + "/latest-prediction"
	ThresholdPath        = APIBasePath + "/threshold"
	ScoreQuantilesPath   = APIBasePath + "/score-quantiles"
)

const (
	LabelDeviceName    = "device"
	LabelProfileName   = "profile"
	LabelNodeName      = "host"
	LabelCorrelationId = "correlation_id"
	LabelAlgaeType     = "algae_type"
)

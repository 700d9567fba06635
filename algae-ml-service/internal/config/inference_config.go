/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package config

import (
	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/spf13/cast"

	"algae-monitor/algae-ml-service/pkg/attribution"
)

const (
	DefaultModelDir         = "./models"
	DefaultAnomalyThreshold = 0.08
	DefaultSensorProfile    = "algae-tank-sensors"
	DefaultPredictionTopic  = "algae/predictions"
)

type InferenceConfig struct {
	ModelDir                string
	DefaultAnomalyThreshold float64
	DefaultTopN             int
	SensorProfileName       string
	PublishPredictionTopic  string
	PersistOnError          bool
}

func NewInferenceConfig() *InferenceConfig {
	return &InferenceConfig{
		ModelDir:                DefaultModelDir,
		DefaultAnomalyThreshold: DefaultAnomalyThreshold,
		DefaultTopN:             attribution.DefaultTopN,
		SensorProfileName:       DefaultSensorProfile,
		PublishPredictionTopic:  DefaultPredictionTopic,
	}
}

// LoadConfigurations overrides the defaults with whatever application settings are present.
func (cfg *InferenceConfig) LoadConfigurations(service interfaces.ApplicationService) {
	lc := service.LoggingClient()

	if modelDir, ok := readSetting(service, "ModelDir"); ok {
		cfg.ModelDir = modelDir
	}

	if threshold, ok := readSetting(service, "DefaultAnomalyThreshold"); ok {
		v, err := cast.ToFloat64E(threshold)
		if err != nil {
			lc.Errorf("Invalid DefaultAnomalyThreshold %q, using %v: %v", threshold, cfg.DefaultAnomalyThreshold, err)
		} else {
			cfg.DefaultAnomalyThreshold = v
		}
	}

	if topN, ok := readSetting(service, "DefaultTopN"); ok {
		v, err := cast.ToIntE(topN)
		if err != nil || v < 1 {
			lc.Errorf("Invalid DefaultTopN %q, using %d", topN, cfg.DefaultTopN)
		} else {
			cfg.DefaultTopN = v
		}
	}

	if profile, ok := readSetting(service, "SensorProfileName"); ok {
		cfg.SensorProfileName = profile
	}

	if topic, ok := readSetting(service, "PublishPredictionTopic"); ok {
		cfg.PublishPredictionTopic = topic
	}

	if persist, ok := readSetting(service, "PersistOnError"); ok {
		cfg.PersistOnError = cast.ToBool(persist)
	}

	lc.Infof("Inference configuration: %+v", *cfg)
}

func readSetting(service interfaces.ApplicationService, key string) (string, bool) {
	value, err := service.GetAppSetting(key)
	if err != nil {
		service.LoggingClient().Errorf("Error reading the configuration for %s: %v", key, err)
		return "", false
	}
	return value, value != ""
}

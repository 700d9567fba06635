/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package dto

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"algae-monitor/algae-ml-service/pkg/features"
)

// SensorReadingInput is the body of a predict request. Numeric readings must be present;
// a JSON null marks the reading as missing. Humidity is optional and may be sent as humidity_pct.
type SensorReadingInput struct {
	AlgaeType                   string   `json:"algae_type"                      validate:"required"`
	TemperatureC                *float64 `json:"temperature_C"`
	Humidity                    *float64 `json:"humidity_%,omitempty"`
	HumidityPct                 *float64 `json:"humidity_pct,omitempty"`
	PH                          *float64 `json:"pH"`
	LightIntensityUmolM2S       *float64 `json:"light_intensity_umol_m2_s"`
	LightIntensityLux           *float64 `json:"light_intensity_lux"`
	WaterLevelCm                *float64 `json:"water_level_cm"`
	DissolvedOxygenMgPerL       *float64 `json:"dissolved_oxygen_mg_per_L"`
	ConductivityUSCm            *float64 `json:"conductivity_uS_cm"`
	TurbidityNTU                *float64 `json:"turbidity_NTU"`
	ChlorophyllAUgPerL          *float64 `json:"chlorophyll_a_ug_per_L"`
	CO2FlowRateMLPerMin         *float64 `json:"CO2_flow_rate_mL_per_min"`
	AerationRateLPerMin         *float64 `json:"aeration_rate_L_per_min"`
	OpticalDensity680nm         *float64 `json:"optical_density_680nm"`
	PhotosyntheticEfficiencyPct *float64 `json:"photosynthetic_efficiency_pct"`
	BiomassConcentrationGPerL   *float64 `json:"biomass_concentration_g_per_L"`
	NitrateMgPerL               *float64 `json:"nitrate_mg_per_L"`
	PhosphateMgPerL             *float64 `json:"phosphate_mg_per_L"`
	AmmoniumMgPerL              *float64 `json:"ammonium_mg_per_L"`

	present map[string]bool
}

// RequiredReadings are the numeric readings every predict request has to carry.
var RequiredReadings = []string{
	"temperature_C",
	"pH",
	"light_intensity_umol_m2_s",
	"light_intensity_lux",
	"water_level_cm",
	"dissolved_oxygen_mg_per_L",
	"conductivity_uS_cm",
	"turbidity_NTU",
	"chlorophyll_a_ug_per_L",
	"CO2_flow_rate_mL_per_min",
	"aeration_rate_L_per_min",
	"optical_density_680nm",
	"photosynthetic_efficiency_pct",
	"biomass_concentration_g_per_L",
	"nitrate_mg_per_L",
	"phosphate_mg_per_L",
	"ammonium_mg_per_L",
}

func (in *SensorReadingInput) UnmarshalJSON(data []byte) error {
	type plain SensorReadingInput
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*in = SensorReadingInput(decoded)
	in.present = make(map[string]bool, len(keys))
	for k := range keys {
		in.present[k] = true
	}
	return nil
}

// Has reports whether the request carried the field, including as null.
func (in *SensorReadingInput) Has(field string) bool {
	if in.present == nil {
		return in.readings()[field] != nil
	}
	return in.present[field]
}

func (in *SensorReadingInput) readings() map[string]*float64 {
	return map[string]*float64{
		"temperature_C":                 in.TemperatureC,
		features.HumidityField:          in.Humidity,
		features.HumidityAlias:          in.HumidityPct,
		"pH":                            in.PH,
		"light_intensity_umol_m2_s":     in.LightIntensityUmolM2S,
		"light_intensity_lux":           in.LightIntensityLux,
		"water_level_cm":                in.WaterLevelCm,
		"dissolved_oxygen_mg_per_L":     in.DissolvedOxygenMgPerL,
		"conductivity_uS_cm":            in.ConductivityUSCm,
		"turbidity_NTU":                 in.TurbidityNTU,
		"chlorophyll_a_ug_per_L":        in.ChlorophyllAUgPerL,
		"CO2_flow_rate_mL_per_min":      in.CO2FlowRateMLPerMin,
		"aeration_rate_L_per_min":       in.AerationRateLPerMin,
		"optical_density_680nm":         in.OpticalDensity680nm,
		"photosynthetic_efficiency_pct": in.PhotosyntheticEfficiencyPct,
		"biomass_concentration_g_per_L": in.BiomassConcentrationGPerL,
		"nitrate_mg_per_L":              in.NitrateMgPerL,
		"phosphate_mg_per_L":            in.PhosphateMgPerL,
		"ammonium_mg_per_L":             in.AmmoniumMgPerL,
	}
}

// ToRecord converts the request into a sensor record. Null readings become explicit
// missing markers, absent optional readings are left out.
func (in *SensorReadingInput) ToRecord() features.Record {
	record := features.Record{features.AlgaeTypeField: features.Category(in.AlgaeType)}
	for name, v := range in.readings() {
		if name == features.HumidityAlias && in.Has(features.HumidityField) {
			continue
		}
		if !in.Has(name) {
			continue
		}
		if v == nil {
			record.Set(name, features.Missing())
		} else {
			record.Set(name, features.Numeric(*v))
		}
	}
	return record
}

// NewValidator returns a validator that also enforces the presence of every required reading.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(SensorReadingInput)
		for _, name := range RequiredReadings {
			if !in.Has(name) {
				sl.ReportError(nil, name, name, "required", "")
			}
		}
	}, SensorReadingInput{})
	return v
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package model

import (
	"fmt"
)

const (
	ScalerStandard = "standard"
	ScalerMinMax   = "minmax"
)

// Scaler is an exported feature scaler. Standard scalers use Mean and Scale,
// min-max scalers use Scale and Min.
type Scaler struct {
	Kind  string    `json:"kind"`
	Mean  []float64 `json:"mean,omitempty"`
	Scale []float64 `json:"scale"`
	Min   []float64 `json:"min,omitempty"`
}

func (s *Scaler) Validate(nFeatures int) error {
	if len(s.Scale) != nFeatures {
		return fmt.Errorf("scaler has %d scale values, expected %d", len(s.Scale), nFeatures)
	}
	switch s.Kind {
	case ScalerStandard, "":
		if s.Mean != nil && len(s.Mean) != nFeatures {
			return fmt.Errorf("scaler has %d mean values, expected %d", len(s.Mean), nFeatures)
		}
	case ScalerMinMax:
		if len(s.Min) != nFeatures {
			return fmt.Errorf("scaler has %d min values, expected %d", len(s.Min), nFeatures)
		}
	default:
		return fmt.Errorf("unsupported scaler kind %q", s.Kind)
	}
	return nil
}

// Transform returns a scaled copy of x.
func (s *Scaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if s.Kind == ScalerMinMax {
			out[i] = v*s.Scale[i] + s.Min[i]
			continue
		}
		if s.Mean != nil {
			v -= s.Mean[i]
		}
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = v / scale
	}
	return out
}

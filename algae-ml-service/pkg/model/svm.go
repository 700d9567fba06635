/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	KernelRBF     = "rbf"
	KernelLinear  = "linear"
	KernelPoly    = "poly"
	KernelSigmoid = "sigmoid"
)

// OneClassSVM is an exported one-class support vector scorer. Positive decision
// values are inliers, negative values outliers.
type OneClassSVM struct {
	Kernel         string      `json:"kernel"`
	Gamma          float64     `json:"gamma"`
	Coef0          float64     `json:"coef0"`
	Degree         int         `json:"degree"`
	SupportVectors [][]float64 `json:"support_vectors"`
	DualCoef       []float64   `json:"dual_coef"`
	Intercept      float64     `json:"intercept"`
}

func (m *OneClassSVM) Validate(nFeatures int) error {
	switch m.Kernel {
	case KernelRBF, KernelLinear, KernelPoly, KernelSigmoid:
	default:
		return fmt.Errorf("unsupported kernel %q", m.Kernel)
	}
	if len(m.SupportVectors) == 0 {
		return fmt.Errorf("scorer has no support vectors")
	}
	if len(m.DualCoef) != len(m.SupportVectors) {
		return fmt.Errorf("scorer has %d dual coefficients for %d support vectors", len(m.DualCoef), len(m.SupportVectors))
	}
	for i, sv := range m.SupportVectors {
		if len(sv) != nFeatures {
			return fmt.Errorf("support vector %d has %d features, expected %d", i, len(sv), nFeatures)
		}
	}
	return nil
}

func (m *OneClassSVM) kernel(sv, x []float64) float64 {
	switch m.Kernel {
	case KernelLinear:
		return floats.Dot(sv, x)
	case KernelPoly:
		return math.Pow(m.Gamma*floats.Dot(sv, x)+m.Coef0, float64(m.Degree))
	case KernelSigmoid:
		return math.Tanh(m.Gamma*floats.Dot(sv, x) + m.Coef0)
	default:
		d := floats.Distance(sv, x, 2)
		return math.Exp(-m.Gamma * d * d)
	}
}

// DecisionFunction returns the signed distance of x to the learned boundary.
func (m *OneClassSVM) DecisionFunction(x []float64) float64 {
	k := make([]float64, len(m.SupportVectors))
	for i, sv := range m.SupportVectors {
		k[i] = m.kernel(sv, x)
	}
	return floats.Dot(m.DualCoef, k) + m.Intercept
}

// Predict returns 1 for inliers and -1 for outliers.
func (m *OneClassSVM) Predict(x []float64) int {
	if m.DecisionFunction(x) > 0 {
		return 1
	}
	return -1
}

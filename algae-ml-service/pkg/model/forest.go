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

// FaultyLabel is the class label a per-sensor estimator emits for a faulty sensor.
const FaultyLabel = 1.0

// Forest is an averaged ensemble of classification trees (a single decision tree is a forest of one).
type Forest struct {
	Classes []float64 `json:"classes"`
	Trees   []Tree    `json:"trees"`
}

func (f *Forest) Validate(nFeatures int) error {
	if len(f.Classes) == 0 {
		return fmt.Errorf("estimator declares no classes")
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("estimator has no trees")
	}
	for i := range f.Trees {
		if err := f.Trees[i].Validate(nFeatures, len(f.Classes)); err != nil {
			return fmt.Errorf("tree %d: %v", i, err)
		}
	}
	return nil
}

// PredictProba averages the per-tree class probabilities.
func (f *Forest) PredictProba(x []float64) []float64 {
	proba := make([]float64, len(f.Classes))
	for i := range f.Trees {
		for k, p := range f.Trees[i].PredictProba(x) {
			proba[k] += p
		}
	}
	for k := range proba {
		proba[k] /= float64(len(f.Trees))
	}
	return proba
}

// Predict returns the label of the most probable class; ties go to the first class.
func (f *Forest) Predict(x []float64) float64 {
	proba := f.PredictProba(x)
	best := 0
	for k := 1; k < len(proba); k++ {
		if proba[k] > proba[best] {
			best = k
		}
	}
	return f.Classes[best]
}

func (f *Forest) ClassIndex(label float64) (int, bool) {
	for i, c := range f.Classes {
		if c == label {
			return i, true
		}
	}
	return -1, false
}

// MultiOutputClassifier holds one estimator per target column.
type MultiOutputClassifier struct {
	Estimators []*Forest `json:"estimators"`
}

func (m *MultiOutputClassifier) Validate(nFeatures, nTargets int) error {
	if len(m.Estimators) != nTargets {
		return fmt.Errorf("classifier has %d estimators for %d target columns", len(m.Estimators), nTargets)
	}
	for i, e := range m.Estimators {
		if e == nil {
			return fmt.Errorf("estimator %d is empty", i)
		}
		if err := e.Validate(nFeatures); err != nil {
			return fmt.Errorf("estimator %d: %v", i, err)
		}
	}
	return nil
}

// Predict returns one label per target column.
func (m *MultiOutputClassifier) Predict(x []float64) []float64 {
	labels := make([]float64, len(m.Estimators))
	for i, e := range m.Estimators {
		labels[i] = e.Predict(x)
	}
	return labels
}

/*******************************************************************************
* Contributors: BMC Software, Inc. - BMC Helix Edge
*
* (c) Copyright 2020-2025 BMC Software, Inc.
*******************************************************************************/

package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algae-monitor/algae-ml-service/pkg/attribution"
)

func leaf(value []float64, cover float64) Node {
	return Node{Feature: -2, Threshold: -2, Left: -1, Right: -1, Value: value, Cover: cover}
}

func stumpForest() *Forest {
	return &Forest{
		Classes: []float64{0, 1},
		Trees: []Tree{{Nodes: []Node{
			{Feature: 0, Threshold: 0.5, Left: 1, Right: 2, Value: []float64{6, 4}, Cover: 10},
			leaf([]float64{6, 0}, 6),
			leaf([]float64{0, 4}, 4),
		}}},
	}
}

// deepForest splits twice on feature 0 so the explainer has to unwind the path.
func deepForest() *Forest {
	return &Forest{
		Classes: []float64{0, 1},
		Trees: []Tree{
			{Nodes: []Node{
				{Feature: 0, Threshold: 0.5, Left: 1, Right: 2, Value: []float64{5, 5}, Cover: 10},
				{Feature: 1, Threshold: 1.5, Left: 3, Right: 4, Value: []float64{4, 2}, Cover: 6},
				{Feature: 0, Threshold: 2.0, Left: 5, Right: 6, Value: []float64{1, 3}, Cover: 4},
				leaf([]float64{3, 0}, 3),
				leaf([]float64{1, 2}, 3),
				leaf([]float64{1, 1}, 2),
				leaf([]float64{0, 2}, 2),
			}},
			{Nodes: []Node{
				{Feature: 2, Threshold: 0, Left: 1, Right: 2, Value: []float64{4, 4}, Cover: 8},
				leaf([]float64{3, 1}, 4),
				leaf([]float64{1, 3}, 4),
			}},
		},
	}
}

func TestForest_Predict(t *testing.T) {
	f := deepForest()
	require.NoError(t, f.Validate(3))

	tests := []struct {
		name      string
		x         []float64
		wantProba []float64
		wantLabel float64
	}{
		{name: "both trees lean healthy", x: []float64{0, 0, -1}, wantProba: []float64{0.875, 0.125}, wantLabel: 0},
		{name: "both trees lean faulty", x: []float64{3, 0, 1}, wantProba: []float64{0.125, 0.875}, wantLabel: 1},
		{name: "trees disagree", x: []float64{1, 0, 1}, wantProba: []float64{0.375, 0.625}, wantLabel: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proba := f.PredictProba(tt.x)
			assert.InDeltaSlice(t, tt.wantProba, proba, 1e-12)
			assert.Equal(t, tt.wantLabel, f.Predict(tt.x))
		})
	}

	tie := &Forest{Classes: []float64{0, 1}, Trees: []Tree{{Nodes: []Node{leaf([]float64{2, 2}, 4)}}}}
	assert.Equal(t, 0.0, tie.Predict([]float64{0, 0, 0}), "ties go to the first class")

	idx, ok := f.ClassIndex(FaultyLabel)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	_, ok = f.ClassIndex(7)
	assert.False(t, ok)
}

func TestForest_Validate(t *testing.T) {
	bad := stumpForest()
	bad.Trees[0].Nodes[1].Cover = 0
	assert.Error(t, bad.Validate(1))

	bad = stumpForest()
	bad.Trees[0].Nodes[0].Feature = 3
	assert.Error(t, bad.Validate(1))

	bad = stumpForest()
	bad.Trees[0].Nodes[2].Value = []float64{1}
	assert.Error(t, bad.Validate(1))

	assert.Error(t, (&Forest{Classes: []float64{0, 1}}).Validate(1))
}

func TestMultiOutputClassifier(t *testing.T) {
	m := &MultiOutputClassifier{Estimators: []*Forest{stumpForest(), stumpForest()}}
	require.NoError(t, m.Validate(1, 2))
	assert.Error(t, m.Validate(1, 3))
	assert.Equal(t, []float64{1, 1}, m.Predict([]float64{1}))
	assert.Equal(t, []float64{0, 0}, m.Predict([]float64{0}))
}

func TestTreeExplainer_Stump(t *testing.T) {
	e := NewTreeExplainer(stumpForest(), 1)
	assert.InDeltaSlice(t, []float64{0.6, 0.4}, e.ExpectedValue(), 1e-12)

	out, err := e.Explain([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, attribution.RowFeatureClass, out.Layout)
	assert.Equal(t, []int{1, 1, 2}, out.Shape)
	assert.InDeltaSlice(t, []float64{-0.6, 0.6}, out.Values, 1e-12)
}

func TestTreeExplainer_LocalAccuracy(t *testing.T) {
	f := deepForest()
	e := NewTreeExplainer(f, 3)
	expected := e.ExpectedValue()

	rows := [][]float64{
		{0, 0, -1},
		{0, 3, 1},
		{1, 0, 0},
		{3, 1, 2},
		{2, 1.5, 0},
	}
	for _, x := range rows {
		out, err := e.Explain(x)
		require.NoError(t, err)
		proba := f.PredictProba(x)
		for k := range f.Classes {
			var sum float64
			for i := 0; i < 3; i++ {
				sum += out.Values[i*len(f.Classes)+k]
			}
			assert.InDelta(t, proba[k]-expected[k], sum, 1e-9, "row %v class %d", x, k)
		}
	}
}

func TestTreeExplainer_RepeatedFeature(t *testing.T) {
	f := &Forest{Classes: []float64{0, 1}, Trees: deepForest().Trees[:1]}
	out, err := NewTreeExplainer(f, 3).Explain([]float64{0, 3, 0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.1, -0.1, -0.8 / 3, 0.8 / 3, 0, 0}, out.Values, 1e-9)
}

func TestTreeExplainer_WrongWidth(t *testing.T) {
	_, err := NewTreeExplainer(stumpForest(), 1).Explain([]float64{1, 2})
	assert.Error(t, err)
}

func TestOneClassSVM(t *testing.T) {
	sv := [][]float64{{0, 0}, {1, 1}}
	tests := []struct {
		name string
		svm  OneClassSVM
		x    []float64
		want float64
	}{
		{
			name: "rbf",
			svm:  OneClassSVM{Kernel: KernelRBF, Gamma: 0.5, SupportVectors: sv, DualCoef: []float64{1, 1}, Intercept: -0.5},
			x:    []float64{0, 0},
			want: 1 + math.Exp(-1) - 0.5,
		},
		{
			name: "linear",
			svm:  OneClassSVM{Kernel: KernelLinear, SupportVectors: sv, DualCoef: []float64{0.5, 2}, Intercept: -1},
			x:    []float64{1, 2},
			want: 2*3 - 1,
		},
		{
			name: "poly",
			svm:  OneClassSVM{Kernel: KernelPoly, Gamma: 1, Coef0: 1, Degree: 2, SupportVectors: sv, DualCoef: []float64{1, 1}},
			x:    []float64{1, 0},
			want: 1 + 4,
		},
		{
			name: "sigmoid",
			svm:  OneClassSVM{Kernel: KernelSigmoid, Gamma: 1, SupportVectors: sv, DualCoef: []float64{1, 1}},
			x:    []float64{1, 0},
			want: math.Tanh(0) + math.Tanh(1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.svm.Validate(2))
			assert.InDelta(t, tt.want, tt.svm.DecisionFunction(tt.x), 1e-12)
		})
	}
}

func TestOneClassSVM_Predict(t *testing.T) {
	m := OneClassSVM{Kernel: KernelRBF, Gamma: 1, SupportVectors: [][]float64{{0}}, DualCoef: []float64{1}, Intercept: -0.5}
	assert.Equal(t, 1, m.Predict([]float64{0}))
	assert.Equal(t, -1, m.Predict([]float64{3}))
}

func TestOneClassSVM_Validate(t *testing.T) {
	assert.Error(t, (&OneClassSVM{Kernel: "precomputed"}).Validate(1))
	assert.Error(t, (&OneClassSVM{Kernel: KernelRBF}).Validate(1))
	assert.Error(t, (&OneClassSVM{Kernel: KernelRBF, SupportVectors: [][]float64{{1}}, DualCoef: []float64{1, 2}}).Validate(1))
	assert.Error(t, (&OneClassSVM{Kernel: KernelRBF, SupportVectors: [][]float64{{1, 2}}, DualCoef: []float64{1}}).Validate(1))
}

func TestScaler_Transform(t *testing.T) {
	tests := []struct {
		name   string
		scaler Scaler
		x      []float64
		want   []float64
	}{
		{
			name:   "standard",
			scaler: Scaler{Kind: ScalerStandard, Mean: []float64{10, 0}, Scale: []float64{2, 0}},
			x:      []float64{14, 3},
			want:   []float64{2, 3},
		},
		{
			name:   "standard without centering",
			scaler: Scaler{Kind: ScalerStandard, Scale: []float64{4}},
			x:      []float64{2},
			want:   []float64{0.5},
		},
		{
			name:   "min-max",
			scaler: Scaler{Kind: ScalerMinMax, Scale: []float64{0.1}, Min: []float64{-1}},
			x:      []float64{20},
			want:   []float64{1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.scaler.Validate(len(tt.x)))
			assert.InDeltaSlice(t, tt.want, tt.scaler.Transform(tt.x), 1e-12)
		})
	}
}

func TestScaler_Validate(t *testing.T) {
	assert.Error(t, (&Scaler{Kind: "robust", Scale: []float64{1}}).Validate(1))
	assert.Error(t, (&Scaler{Kind: ScalerStandard, Scale: []float64{1}}).Validate(2))
	assert.Error(t, (&Scaler{Kind: ScalerMinMax, Scale: []float64{1}}).Validate(1))
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package model

import (
	"fmt"

	"algae-monitor/algae-ml-service/pkg/attribution"
)

// TreeExplainer computes path-dependent TreeSHAP values (Lundberg et al., Algorithm 2)
// for every class of a forest. Node covers stand in for the background distribution,
// so for each class k the contributions sum to PredictProba(x)[k] - ExpectedValue()[k].
type TreeExplainer struct {
	forest    *Forest
	nFeatures int
	expected  []float64
}

func NewTreeExplainer(forest *Forest, nFeatures int) *TreeExplainer {
	e := &TreeExplainer{
		forest:    forest,
		nFeatures: nFeatures,
		expected:  make([]float64, len(forest.Classes)),
	}
	for i := range forest.Trees {
		t := &forest.Trees[i]
		root := t.Nodes[0].Cover
		for j := range t.Nodes {
			n := &t.Nodes[j]
			if !n.IsLeaf() {
				continue
			}
			for k, p := range normalize(n.Value) {
				e.expected[k] += n.Cover / root * p
			}
		}
	}
	for k := range e.expected {
		e.expected[k] /= float64(len(forest.Trees))
	}
	return e
}

// ExpectedValue is the cover-weighted mean class probability of the forest.
func (e *TreeExplainer) ExpectedValue() []float64 {
	out := make([]float64, len(e.expected))
	copy(out, e.expected)
	return out
}

// Explain returns the contributions for a single row as a RowFeatureClass [1,F,C] output.
func (e *TreeExplainer) Explain(x []float64) (attribution.Output, error) {
	if len(x) != e.nFeatures {
		return attribution.Output{}, fmt.Errorf("explainer expects %d features, got %d", e.nFeatures, len(x))
	}
	nClasses := len(e.forest.Classes)
	phi := make([]float64, e.nFeatures*nClasses)
	for i := range e.forest.Trees {
		s := shapState{tree: &e.forest.Trees[i], x: x, phi: phi, nClasses: nClasses}
		s.recurse(0, 0, nil, 1, 1, -1)
	}
	for i := range phi {
		phi[i] /= float64(len(e.forest.Trees))
	}
	return attribution.Output{
		Layout: attribution.RowFeatureClass,
		Shape:  []int{1, e.nFeatures, nClasses},
		Values: phi,
	}, nil
}

type pathElement struct {
	feature int
	zero    float64
	one     float64
	pweight float64
}

type shapState struct {
	tree     *Tree
	x        []float64
	phi      []float64
	nClasses int
}

func (s *shapState) recurse(node, depth int, parent []pathElement, zero, one float64, feature int) {
	path := make([]pathElement, depth+1)
	copy(path, parent)
	extendPath(path, depth, zero, one, feature)

	n := &s.tree.Nodes[node]
	if n.IsLeaf() {
		proba := normalize(n.Value)
		for i := 1; i <= depth; i++ {
			el := path[i]
			w := unwoundPathSum(path, depth, i) * (el.one - el.zero)
			for k, p := range proba {
				s.phi[el.feature*s.nClasses+k] += w * p
			}
		}
		return
	}

	hot, cold := s.tree.decide(n, s.x)
	hotZero := s.tree.Nodes[hot].Cover / n.Cover
	coldZero := s.tree.Nodes[cold].Cover / n.Cover
	incomingZero, incomingOne := 1.0, 1.0

	// a feature already on the path is unwound and split again here
	for i := 0; i <= depth; i++ {
		if path[i].feature == n.Feature {
			incomingZero, incomingOne = path[i].zero, path[i].one
			unwindPath(path, depth, i)
			depth--
			break
		}
	}

	s.recurse(hot, depth+1, path, hotZero*incomingZero, incomingOne, n.Feature)
	s.recurse(cold, depth+1, path, coldZero*incomingZero, 0, n.Feature)
}

func extendPath(path []pathElement, depth int, zero, one float64, feature int) {
	path[depth] = pathElement{feature: feature, zero: zero, one: one}
	if depth == 0 {
		path[depth].pweight = 1
	}
	d := float64(depth + 1)
	for i := depth - 1; i >= 0; i-- {
		path[i+1].pweight += one * path[i].pweight * float64(i+1) / d
		path[i].pweight = zero * path[i].pweight * float64(depth-i) / d
	}
}

func unwindPath(path []pathElement, depth, index int) {
	one, zero := path[index].one, path[index].zero
	next := path[depth].pweight
	d := float64(depth + 1)
	for i := depth - 1; i >= 0; i-- {
		if one != 0 {
			tmp := path[i].pweight
			path[i].pweight = next * d / (float64(i+1) * one)
			next = tmp - path[i].pweight*zero*float64(depth-i)/d
		} else {
			path[i].pweight = path[i].pweight * d / (zero * float64(depth-i))
		}
	}
	for i := index; i < depth; i++ {
		path[i].feature = path[i+1].feature
		path[i].zero = path[i+1].zero
		path[i].one = path[i+1].one
	}
}

func unwoundPathSum(path []pathElement, depth, index int) float64 {
	one, zero := path[index].one, path[index].zero
	next := path[depth].pweight
	var total float64
	for i := depth - 1; i >= 0; i-- {
		if one != 0 {
			tmp := next / (float64(i+1) * one)
			total += tmp
			next = path[i].pweight - tmp*zero*float64(depth-i)
		} else {
			total += path[i].pweight / (zero * float64(depth-i))
		}
	}
	return total * float64(depth+1)
}

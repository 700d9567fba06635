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

// Node is one node of an exported decision tree. Leaves have negative child indexes.
// Value holds the class distribution at the node (sample counts or fractions) and
// Cover the weighted number of training samples that reached it.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
	Cover     float64   `json:"cover"`
}

func (n *Node) IsLeaf() bool {
	return n.Left < 0 || n.Right < 0
}

// Tree is a binary classification tree, root at index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

func (t *Tree) Validate(nFeatures, nClasses int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if n.Cover <= 0 {
			return fmt.Errorf("node %d has non-positive cover %v", i, n.Cover)
		}
		if n.IsLeaf() {
			if len(n.Value) != nClasses {
				return fmt.Errorf("leaf %d has %d class values, expected %d", i, len(n.Value), nClasses)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d outside [0,%d)", i, n.Feature, nFeatures)
		}
		if n.Left <= i || n.Right <= i || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has invalid children %d/%d", i, n.Left, n.Right)
		}
	}
	return nil
}

// decide returns the child taken by x followed by the other one.
func (t *Tree) decide(n *Node, x []float64) (hot, cold int) {
	if x[n.Feature] <= n.Threshold {
		return n.Left, n.Right
	}
	return n.Right, n.Left
}

func (t *Tree) leaf(x []float64) *Node {
	n := &t.Nodes[0]
	for !n.IsLeaf() {
		next, _ := t.decide(n, x)
		n = &t.Nodes[next]
	}
	return n
}

// PredictProba returns the normalized class distribution of the leaf x falls into.
func (t *Tree) PredictProba(x []float64) []float64 {
	return normalize(t.leaf(x).Value)
}

func normalize(v []float64) []float64 {
	out := make([]float64, len(v))
	var sum float64
	for _, c := range v {
		sum += c
	}
	if sum == 0 {
		return out
	}
	for i, c := range v {
		out[i] = c / sum
	}
	return out
}

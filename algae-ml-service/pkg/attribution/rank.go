/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package attribution

import (
	"math"
	"sort"
)

// DefaultTopN is the number of contributions kept when the caller does not ask for another count.
const DefaultTopN = 3

type Contribution struct {
	Feature string
	Value   float64
}

// TopN keeps the n features with the largest absolute contribution, largest first.
// Ties keep column order. Values are reported as magnitudes.
func TopN(values []float64, columns []string, n int) []Contribution {
	if n <= 0 {
		n = DefaultTopN
	}
	count := len(values)
	if len(columns) < count {
		count = len(columns)
	}
	ranked := make([]Contribution, 0, count)
	for i := 0; i < count; i++ {
		ranked = append(ranked, Contribution{Feature: columns[i], Value: math.Abs(values[i])})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func ToMap(contributions []Contribution) map[string]float64 {
	m := make(map[string]float64, len(contributions))
	for _, c := range contributions {
		m[c.Feature] = c.Value
	}
	return m
}

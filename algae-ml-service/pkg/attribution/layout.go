/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package attribution

import (
	"errors"
	"fmt"
)

// Layout names one of the finite array layouts an explainer can emit.
// F is the number of features, C the number of classes and R the number of explained rows.
type Layout int

const (
	Unknown         Layout = iota
	Vector                 // [F]
	RowVector              // [R,F]
	FeatureClass           // [F,C]
	ClassFeature           // [C,F]
	RowFeatureClass        // [R,F,C]
	ClassRowFeature        // [C,R,F]
	ClassList              // C x [R,F], flattened class-major
)

var layoutNames = map[Layout]string{
	Vector:          "Vector[F]",
	RowVector:       "RowVector[R,F]",
	FeatureClass:    "FeatureClass[F,C]",
	ClassFeature:    "ClassFeature[C,F]",
	RowFeatureClass: "RowFeatureClass[R,F,C]",
	ClassRowFeature: "ClassRowFeature[C,R,F]",
	ClassList:       "ClassList[C][R,F]",
}

var layoutRanks = map[Layout]int{
	Vector:          1,
	RowVector:       2,
	FeatureClass:    2,
	ClassFeature:    2,
	RowFeatureClass: 3,
	ClassRowFeature: 3,
	ClassList:       3,
}

func (l Layout) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

var ErrUnsupportedShape = errors.New("unsupported attribution output shape")

// Output is a row-major attribution array tagged with its layout.
type Output struct {
	Layout Layout
	Shape  []int
	Values []float64
}

func unsupported(out Output, reason string) error {
	return fmt.Errorf("%w: layout %s, shape %v: %s", ErrUnsupportedShape, out.Layout, out.Shape, reason)
}

// Decode normalizes an explainer output to one signed contribution per feature.
// The positive-class slice is selected where the layout has a class axis and row 0
// where it has a row axis. Anything that does not match its declared layout is rejected.
func Decode(out Output, nFeatures, positiveClass int) ([]float64, error) {
	rank, known := layoutRanks[out.Layout]
	if !known {
		return nil, unsupported(out, "unknown layout")
	}
	if len(out.Shape) != rank {
		return nil, unsupported(out, fmt.Sprintf("expected rank %d", rank))
	}
	size := 1
	for _, d := range out.Shape {
		if d <= 0 {
			return nil, unsupported(out, "empty dimension")
		}
		size *= d
	}
	if size != len(out.Values) {
		return nil, unsupported(out, fmt.Sprintf("shape holds %d values, got %d", size, len(out.Values)))
	}

	// Feature i of the selected slice sits at Values[offset+i*stride].
	var f, c, offset, stride int
	stride = 1
	switch out.Layout {
	case Vector, RowVector:
		f, c = out.Shape[rank-1], 1
	case FeatureClass:
		f, c = out.Shape[0], out.Shape[1]
		offset, stride = positiveClass, c
	case ClassFeature:
		c, f = out.Shape[0], out.Shape[1]
		offset = positiveClass * f
	case RowFeatureClass:
		f, c = out.Shape[1], out.Shape[2]
		offset, stride = positiveClass, c
	case ClassRowFeature, ClassList:
		c, f = out.Shape[0], out.Shape[2]
		offset = positiveClass * out.Shape[1] * f
	}
	if f != nFeatures {
		return nil, unsupported(out, fmt.Sprintf("expected %d features", nFeatures))
	}
	if out.Layout != Vector && out.Layout != RowVector && (positiveClass < 0 || positiveClass >= c) {
		return nil, unsupported(out, fmt.Sprintf("positive class %d outside %d classes", positiveClass, c))
	}

	vec := make([]float64, f)
	for i := range vec {
		vec[i] = out.Values[offset+i*stride]
	}
	return vec, nil
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package features

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

const (
	// MissingSentinel is written into every aligned column that has no usable input value.
	MissingSentinel = -999.0

	HumidityField  = "humidity_%"
	HumidityAlias  = "humidity_pct"
	AlgaeTypeField = "algae_type"
)

// Value is one field of a sensor record: a number, a category or an explicit missing marker.
type Value struct {
	Number      float64
	Category    string
	Categorical bool
	Missing     bool
}

func Numeric(v float64) Value {
	return Value{Number: v}
}

func Category(c string) Value {
	return Value{Category: c, Categorical: true}
}

func Missing() Value {
	return Value{Missing: true}
}

// Record is a single snapshot of sensor readings keyed by field name.
type Record map[string]Value

// CanonicalName maps accepted aliases onto the column name the models were trained with.
func CanonicalName(name string) string {
	if name == HumidityAlias {
		return HumidityField
	}
	return name
}

// IsMissing reports whether the field is present and explicitly marked as missing.
func (r Record) IsMissing(name string) bool {
	v, ok := r[name]
	return ok && v.Missing
}

// Set stores a value under its canonical field name.
func (r Record) Set(name string, v Value) {
	r[CanonicalName(name)] = v
}

// ToMap renders the record the way it was received: missing markers become nil.
func (r Record) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, len(r))
	for name, v := range r {
		switch {
		case v.Missing:
			out[name] = nil
		case v.Categorical:
			out[name] = v.Category
		default:
			out[name] = v.Number
		}
	}
	return out
}

// IsCategorical reports whether a field carries a category rather than a measurement.
func IsCategorical(name string) bool {
	return name == AlgaeTypeField
}

// FromMap builds a Record from a decoded JSON object.
// nil and NaN become explicit missing markers and categorical fields keep their text.
// Every other field must be convertible to a float, numeric strings included.
func FromMap(raw map[string]interface{}) (Record, error) {
	record := make(Record, len(raw))
	for name, value := range raw {
		canonical := CanonicalName(name)
		v, err := toValue(canonical, value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %v", name, err)
		}
		record[canonical] = v
	}
	return record, nil
}

func toValue(name string, value interface{}) (Value, error) {
	switch typed := value.(type) {
	case nil:
		return Missing(), nil
	case string:
		return ParseReading(typed, IsCategorical(name))
	case float64:
		if math.IsNaN(typed) {
			return Missing(), nil
		}
		if IsCategorical(name) {
			return Category(cast.ToString(typed)), nil
		}
		return Numeric(typed), nil
	}
	if IsCategorical(name) {
		c, err := cast.ToStringE(value)
		if err != nil {
			return Value{}, err
		}
		return Category(c), nil
	}
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return Value{}, err
	}
	if math.IsNaN(f) {
		return Missing(), nil
	}
	return Numeric(f), nil
}

// ParseReading converts the textual value of a device reading. Empty and NaN
// values are explicit missing markers.
func ParseReading(text string, categorical bool) (Value, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.EqualFold(trimmed, "nan") || strings.EqualFold(trimmed, "null") {
		return Missing(), nil
	}
	if categorical {
		return Category(trimmed), nil
	}
	f, err := cast.ToFloat64E(trimmed)
	if err != nil {
		return Value{}, err
	}
	if math.IsNaN(f) {
		return Missing(), nil
	}
	return Numeric(f), nil
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package features

import (
	"errors"
	"fmt"
)

// Schema is the ordered column list a model was trained with.
type Schema struct {
	columns []string
	index   map[string]int
}

func NewSchema(columns []string) (*Schema, error) {
	if len(columns) == 0 {
		return nil, errors.New("feature schema has no columns")
	}
	s := &Schema{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	copy(s.columns, columns)
	for i, c := range columns {
		if _, dup := s.index[c]; dup {
			return nil, fmt.Errorf("duplicate feature column %q", c)
		}
		s.index[c] = i
	}
	return s, nil
}

func (s *Schema) Len() int {
	return len(s.columns)
}

func (s *Schema) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

func (s *Schema) Column(i int) string {
	return s.columns[i]
}

func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// OneHotColumn is the column name a categorical value expands to.
func OneHotColumn(field, category string) string {
	return field + "_" + category
}

// Align maps a record onto the schema. Fields the schema does not know are dropped,
// categorical fields are one-hot encoded and every column without a value,
// including one-hot columns of categories not present in the record, is set to MissingSentinel.
func (s *Schema) Align(r Record) []float64 {
	vec := make([]float64, len(s.columns))
	for i := range vec {
		vec[i] = MissingSentinel
	}
	for name, v := range r {
		switch {
		case v.Missing:
			continue
		case v.Categorical:
			if i, ok := s.index[OneHotColumn(name, v.Category)]; ok {
				vec[i] = 1
			}
		default:
			if i, ok := s.index[name]; ok {
				vec[i] = v.Number
			}
		}
	}
	return vec
}

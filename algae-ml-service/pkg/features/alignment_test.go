/*******************************************************************************
* Contributors: BMC Software, Inc. - BMC Helix Edge
*
* (c) Copyright 2020-2025 BMC Software, Inc.
*******************************************************************************/

package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColumns = []string{
	"temperature_C",
	"pH",
	"humidity_%",
	"algae_type_Chlorella",
	"algae_type_Spirulina",
}

func TestNewSchema(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		wantErr bool
	}{
		{name: "valid columns", columns: testColumns},
		{name: "empty columns", columns: nil, wantErr: true},
		{name: "duplicate column", columns: []string{"pH", "pH"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSchema(tt.columns)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.columns), s.Len())
			assert.Equal(t, tt.columns, s.Columns())
		})
	}
}

func TestSchema_Align(t *testing.T) {
	schema, err := NewSchema(testColumns)
	require.NoError(t, err)

	tests := []struct {
		name   string
		record Record
		want   []float64
	}{
		{
			name: "complete record with one-hot category",
			record: Record{
				"temperature_C": Numeric(28),
				"pH":            Numeric(7.2),
				"humidity_%":    Numeric(65),
				"algae_type":    Category("Chlorella"),
			},
			want: []float64{28, 7.2, 65, 1, MissingSentinel},
		},
		{
			name: "unknown fields are dropped",
			record: Record{
				"temperature_C": Numeric(20),
				"salinity":      Numeric(3.5),
			},
			want: []float64{20, MissingSentinel, MissingSentinel, MissingSentinel, MissingSentinel},
		},
		{
			name: "explicit missing value uses sentinel",
			record: Record{
				"pH":         Missing(),
				"algae_type": Category("Spirulina"),
			},
			want: []float64{MissingSentinel, MissingSentinel, MissingSentinel, MissingSentinel, 1},
		},
		{
			name: "unknown category leaves all one-hot columns at sentinel",
			record: Record{
				"algae_type": Category("Nannochloropsis"),
			},
			want: []float64{MissingSentinel, MissingSentinel, MissingSentinel, MissingSentinel, MissingSentinel},
		},
		{
			name:   "empty record",
			record: Record{},
			want:   []float64{MissingSentinel, MissingSentinel, MissingSentinel, MissingSentinel, MissingSentinel},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schema.Align(tt.record)
			assert.Len(t, got, schema.Len())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromMap(t *testing.T) {
	record, err := FromMap(map[string]interface{}{
		"algae_type":       "Chlorella",
		"temperature_C":    28.0,
		"humidity_pct":     nil,
		"pH":               math.NaN(),
		"water_level_cm":   48,
		"aerated":          true,
		"turbidity_NTU":    " 2.5 ",
		"nitrate_mg_per_L": "NaN",
	})
	require.NoError(t, err)

	assert.Equal(t, Category("Chlorella"), record["algae_type"])
	assert.Equal(t, Numeric(28), record["temperature_C"])
	assert.Equal(t, Numeric(48), record["water_level_cm"])
	assert.Equal(t, Numeric(1), record["aerated"])
	assert.Equal(t, Numeric(2.5), record["turbidity_NTU"])
	assert.True(t, record.IsMissing("nitrate_mg_per_L"))
	assert.True(t, record.IsMissing("humidity_%"), "alias must be stored under the canonical name")
	assert.True(t, record.IsMissing("pH"))
	assert.False(t, record.IsMissing("temperature_C"))
	assert.False(t, record.IsMissing("not_present"))
}

func TestFromMap_NumericStrings(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value interface{}
		want  Value
	}{
		{name: "numeric string for a numeric field", field: "temperature_C", value: "28.0", want: Numeric(28)},
		{name: "exponent string", field: "pH", value: "7.2e+00", want: Numeric(7.2)},
		{name: "empty string is missing", field: "pH", value: "", want: Missing()},
		{name: "algae type stays a category", field: AlgaeTypeField, value: "Spirulina", want: Category("Spirulina")},
		{name: "numeric algae type is a category", field: AlgaeTypeField, value: 3, want: Category("3")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := FromMap(map[string]interface{}{tt.field: tt.value})
			require.NoError(t, err)
			assert.Equal(t, tt.want, record[tt.field])
		})
	}
}

func TestFromMap_NumericStringAligns(t *testing.T) {
	schema, err := NewSchema([]string{"temperature_C"})
	require.NoError(t, err)
	record, err := FromMap(map[string]interface{}{"temperature_C": "28.0"})
	require.NoError(t, err)
	assert.Equal(t, []float64{28}, schema.Align(record))
}

func TestFromMap_InvalidValue(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
	}{
		{name: "slice", value: []int{1, 2}},
		{name: "text in a numeric field", value: "acidic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(map[string]interface{}{"pH": tt.value})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "pH")
		})
	}
}

func TestParseReading(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		categorical bool
		want        Value
		wantErr     bool
	}{
		{name: "float", text: "7.200000e+00", want: Numeric(7.2)},
		{name: "empty is missing", text: " ", want: Missing()},
		{name: "NaN is missing", text: "NaN", want: Missing()},
		{name: "category", text: "Chlorella", categorical: true, want: Category("Chlorella")},
		{name: "garbage numeric", text: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReading(tt.text, tt.categorical)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecord_ToMap(t *testing.T) {
	record := Record{
		AlgaeTypeField:  Category("Spirulina"),
		"pH":            Missing(),
		"temperature_C": Numeric(27.5),
	}
	assert.Equal(t, map[string]interface{}{
		AlgaeTypeField:  "Spirulina",
		"pH":            nil,
		"temperature_C": 27.5,
	}, record.ToMap())
}

/*******************************************************************************
* Contributors: BMC Software, Inc. - BMC Helix Edge
*
* (c) Copyright 2020-2025 BMC Software, Inc.
*******************************************************************************/

package state

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algae-monitor/algae-ml-service/pkg/dto"
)

func TestStatusStore_Threshold(t *testing.T) {
	store, err := NewStatusStore(0.08)
	require.NoError(t, err)
	assert.Equal(t, 0.08, store.Threshold())

	require.NoError(t, store.SetThreshold(-0.2))
	assert.Equal(t, -0.2, store.Threshold())

	assert.ErrorIs(t, store.SetThreshold(math.NaN()), ErrInvalidThreshold)
	assert.ErrorIs(t, store.SetThreshold(math.Inf(1)), ErrInvalidThreshold)
	assert.Equal(t, -0.2, store.Threshold())

	_, err = NewStatusStore(math.Inf(-1))
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestStatusStore_Latest(t *testing.T) {
	store, err := NewStatusStore(0.08)
	require.NoError(t, err)

	_, found := store.Latest()
	assert.False(t, found)

	input := map[string]interface{}{"algae_type": "Chlorella", "pH": 7.2}
	result := &dto.SystemStatusResponse{SensorFaults: []string{"pH"}, RowScore: 0.3}
	store.RecordPrediction(input, result)
	require.NoError(t, store.SetThreshold(0.1))

	latest, found := store.Latest()
	require.True(t, found)
	assert.Equal(t, input, latest.InputData)
	assert.Same(t, result, latest.PredictionResult)
	assert.Equal(t, 0.1, latest.CurrentAnomalyThreshold)

	next := &dto.SystemStatusResponse{RowScore: -0.4}
	store.RecordPrediction(map[string]interface{}{"algae_type": "Spirulina"}, next)
	latest, _ = store.Latest()
	assert.Same(t, next, latest.PredictionResult)
}

func TestStatusStore_ScoreQuantiles(t *testing.T) {
	store, err := NewStatusStore(0.08)
	require.NoError(t, err)

	empty := store.ScoreQuantiles(DefaultQuantiles)
	assert.Zero(t, empty.Count)
	assert.Empty(t, empty.Quantiles)

	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func(score float64) {
			defer wg.Done()
			store.RecordPrediction(nil, &dto.SystemStatusResponse{RowScore: score})
		}(float64(i) / 100)
	}
	wg.Wait()

	resp := store.ScoreQuantiles(DefaultQuantiles)
	assert.Equal(t, uint64(100), resp.Count)
	require.Len(t, resp.Quantiles, 3)
	assert.InDelta(t, 0.5, resp.Quantiles["0.5"], 0.05)
	assert.InDelta(t, 0.95, resp.Quantiles["0.95"], 0.05)
	assert.InDelta(t, 0.99, resp.Quantiles["0.99"], 0.05)
}

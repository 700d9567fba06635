/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package state

import (
	"errors"
	"math"
	"strconv"
	"sync"

	"github.com/caio/go-tdigest/v4"
	"github.com/patrickmn/go-cache"

	"algae-monitor/algae-ml-service/pkg/dto"
)

const latestKey = "latest"

var DefaultQuantiles = []float64{0.5, 0.95, 0.99}

var ErrInvalidThreshold = errors.New("threshold must be a finite number")

// StatusStore holds the runtime-mutable anomaly threshold, the last prediction
// and the distribution of observed row scores.
type StatusStore struct {
	mu        sync.RWMutex
	threshold float64
	latest    *cache.Cache
	digest    *tdigest.TDigest
}

func NewStatusStore(defaultThreshold float64) (*StatusStore, error) {
	if math.IsNaN(defaultThreshold) || math.IsInf(defaultThreshold, 0) {
		return nil, ErrInvalidThreshold
	}
	digest, err := tdigest.New()
	if err != nil {
		return nil, err
	}
	return &StatusStore{
		threshold: defaultThreshold,
		latest:    cache.New(cache.NoExpiration, 0),
		digest:    digest,
	}, nil
}

func (s *StatusStore) Threshold() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.threshold
}

func (s *StatusStore) SetThreshold(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrInvalidThreshold
	}
	s.mu.Lock()
	s.threshold = v
	s.mu.Unlock()
	return nil
}

// RecordPrediction replaces the latest input/result pair and feeds the row score into the digest.
func (s *StatusStore) RecordPrediction(input map[string]interface{}, result *dto.SystemStatusResponse) {
	s.latest.Set(latestKey, snapshot{input: input, result: result}, cache.NoExpiration)
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.digest.Add(result.RowScore)
}

type snapshot struct {
	input  map[string]interface{}
	result *dto.SystemStatusResponse
}

// Latest returns the last prediction together with the threshold currently in force.
func (s *StatusStore) Latest() (dto.LatestPrediction, bool) {
	item, found := s.latest.Get(latestKey)
	if !found {
		return dto.LatestPrediction{}, false
	}
	snap := item.(snapshot)
	return dto.LatestPrediction{
		InputData:               snap.input,
		PredictionResult:        snap.result,
		CurrentAnomalyThreshold: s.Threshold(),
	}, true
}

// ScoreQuantiles reports the requested quantiles of all row scores recorded so far.
func (s *StatusStore) ScoreQuantiles(qs []float64) dto.ScoreQuantilesResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := dto.ScoreQuantilesResponse{
		Count:     s.digest.Count(),
		Quantiles: make(map[string]float64, len(qs)),
	}
	if resp.Count == 0 {
		return resp
	}
	for _, q := range qs {
		resp.Quantiles[strconv.FormatFloat(q, 'f', -1, 64)] = s.digest.Quantile(q)
	}
	return resp
}

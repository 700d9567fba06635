/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package prediction

import (
	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/pkg/errors"

	"algae-monitor/algae-ml-service/pkg/artifacts"
	"algae-monitor/algae-ml-service/pkg/attribution"
	"algae-monitor/algae-ml-service/pkg/dto"
	"algae-monitor/algae-ml-service/pkg/features"
	"algae-monitor/algae-ml-service/pkg/model"
)

// Options tune a single prediction. A zero TopN uses attribution.DefaultTopN and a nil
// Threshold falls back to the anomaly model's own inlier/outlier decision.
type Options struct {
	TopN      int
	Threshold *float64
}

// Predictor runs the sensor fault classifier and the row anomaly scorer over one record.
// It is immutable after construction and safe for concurrent use.
type Predictor struct {
	bundle     *artifacts.Bundle
	explainers []*model.TreeExplainer
	positive   []int
	lc         logger.LoggingClient
}

func NewPredictor(bundle *artifacts.Bundle, lc logger.LoggingClient) (*Predictor, error) {
	if bundle == nil || bundle.Classifier == nil || bundle.AnomalyModel == nil || bundle.Scaler == nil {
		return nil, errors.New("model artifacts are not loaded")
	}
	p := &Predictor{
		bundle:     bundle,
		explainers: make([]*model.TreeExplainer, len(bundle.Classifier.Estimators)),
		positive:   make([]int, len(bundle.Classifier.Estimators)),
		lc:         lc,
	}
	for i, estimator := range bundle.Classifier.Estimators {
		p.explainers[i] = model.NewTreeExplainer(estimator, bundle.FeatureSchema.Len())
		idx, ok := estimator.ClassIndex(model.FaultyLabel)
		if !ok {
			// the estimator never saw a fault, there is nothing to explain
			lc.Warnf("estimator for sensor %s has no faulty class", bundle.Targets[i])
			idx = -1
		}
		p.positive[i] = idx
	}
	return p, nil
}

func (p *Predictor) Targets() []string {
	out := make([]string, len(p.bundle.Targets))
	copy(out, p.bundle.Targets)
	return out
}

// Predict flags faulty sensors, explains the ones the classifier flagged and scores the whole row.
// It either returns a complete result or an error.
func (p *Predictor) Predict(record features.Record, opts Options) (*dto.SystemStatusResponse, error) {
	topN := opts.TopN
	if topN <= 0 {
		topN = attribution.DefaultTopN
	}

	faults, explanations, err := p.sensorFaults(record, topN)
	if err != nil {
		return nil, err
	}
	anomaly, score, topFeatures := p.rowAnomaly(record, opts.Threshold, topN)

	return &dto.SystemStatusResponse{
		SensorFaults:       faults,
		SensorExplanations: explanations,
		RowAnomaly:         anomaly,
		RowScore:           score,
		RowTopFeatures:     topFeatures,
	}, nil
}

func (p *Predictor) sensorFaults(record features.Record, topN int) ([]string, map[string]map[string]float64, error) {
	schema := p.bundle.FeatureSchema
	x := schema.Align(record)
	labels := p.bundle.Classifier.Predict(x)

	faults := make([]string, 0)
	explanations := make(map[string]map[string]float64)
	for i, sensor := range p.bundle.Targets {
		modelFlagged := labels[i] == model.FaultyLabel
		// an explicitly missing reading is a fault whatever the model says
		if !modelFlagged && !record.IsMissing(sensor) {
			continue
		}
		faults = append(faults, sensor)
		if !modelFlagged {
			continue
		}

		out, err := p.explainers[i].Explain(x)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to explain sensor %s", sensor)
		}
		values, err := attribution.Decode(out, schema.Len(), p.positive[i])
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to explain sensor %s", sensor)
		}
		explanations[sensor] = attribution.ToMap(attribution.TopN(values, schema.Columns(), topN))
	}
	return faults, explanations, nil
}

func (p *Predictor) rowAnomaly(record features.Record, threshold *float64, topN int) (bool, float64, map[string]float64) {
	schema := p.bundle.AnomalySchema
	row := schema.Align(record)
	base := p.score(row)

	var anomaly bool
	if threshold != nil {
		anomaly = base < *threshold
	} else {
		anomaly = p.bundle.AnomalyModel.Predict(p.bundle.Scaler.Transform(row)) == -1
	}

	influence := make([]float64, schema.Len())
	perturbed := make([]float64, len(row))
	for i := range row {
		median, ok := p.bundle.FeatureMedians[schema.Column(i)]
		if !ok {
			continue
		}
		copy(perturbed, row)
		perturbed[i] = median
		influence[i] = base - p.score(perturbed)
	}
	top := attribution.TopN(influence, schema.Columns(), topN)
	return anomaly, base, attribution.ToMap(top)
}

func (p *Predictor) score(row []float64) float64 {
	return p.bundle.AnomalyModel.DecisionFunction(p.bundle.Scaler.Transform(row))
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"algae-monitor/algae-ml-service/pkg/features"
	"algae-monitor/algae-ml-service/pkg/model"
)

const ManifestFile = "manifest.toml"

// Manifest names the artifact files inside a model directory.
type Manifest struct {
	Classifier     string `toml:"Classifier"`
	FeatureColumns string `toml:"FeatureColumns"`
	TargetColumns  string `toml:"TargetColumns"`
	AnomalyModel   string `toml:"AnomalyModel"`
	Scaler         string `toml:"Scaler"`
	AnomalyColumns string `toml:"AnomalyColumns"`
	FeatureMedians string `toml:"FeatureMedians"`
}

func DefaultManifest() Manifest {
	return Manifest{
		Classifier:     "sensor_fault_model_v2.json",
		FeatureColumns: "sensor_feature_columns_v2.json",
		TargetColumns:  "sensor_target_columns_v2.json",
		AnomalyModel:   "row_anomaly_model.json",
		Scaler:         "row_anomaly_scaler.json",
		AnomalyColumns: "row_feature_columns.json",
		FeatureMedians: "row_feature_medians.json",
	}
}

// Files lists the artifact file names in load order.
func (m Manifest) Files() []string {
	return []string{
		m.Classifier,
		m.FeatureColumns,
		m.TargetColumns,
		m.AnomalyModel,
		m.Scaler,
		m.AnomalyColumns,
		m.FeatureMedians,
	}
}

// ReadManifest reads manifest.toml from dir; entries it leaves empty keep their default file name.
// A directory without a manifest uses the defaults.
func ReadManifest(dir string) (Manifest, error) {
	manifest := DefaultManifest()
	path := filepath.Join(dir, ManifestFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return manifest, nil
	}
	tree, err := toml.LoadFile(path)
	if err != nil {
		return manifest, errors.Wrapf(err, "failed to read %s", path)
	}
	var override Manifest
	if err := tree.Unmarshal(&override); err != nil {
		return manifest, errors.Wrapf(err, "failed to decode %s", path)
	}
	merge(&manifest.Classifier, override.Classifier)
	merge(&manifest.FeatureColumns, override.FeatureColumns)
	merge(&manifest.TargetColumns, override.TargetColumns)
	merge(&manifest.AnomalyModel, override.AnomalyModel)
	merge(&manifest.Scaler, override.Scaler)
	merge(&manifest.AnomalyColumns, override.AnomalyColumns)
	merge(&manifest.FeatureMedians, override.FeatureMedians)
	return manifest, nil
}

func merge(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// Bundle is the read-only artifact set both models are served from.
type Bundle struct {
	Classifier     *model.MultiOutputClassifier
	FeatureSchema  *features.Schema
	Targets        []string
	AnomalyModel   *model.OneClassSVM
	Scaler         *model.Scaler
	AnomalySchema  *features.Schema
	FeatureMedians map[string]float64
}

// Load reads and cross-checks every artifact in dir. All missing files are reported together.
func Load(dir string, lc logger.LoggingClient) (*Bundle, error) {
	manifest, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}

	var missing error
	for _, name := range manifest.Files() {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = multierror.Append(missing, fmt.Errorf("artifact %s not found in %s", name, dir))
		}
	}
	if missing != nil {
		return nil, missing
	}

	var (
		bundle         Bundle
		featureColumns []string
		anomalyColumns []string
		classifier     model.MultiOutputClassifier
		svm            model.OneClassSVM
		scaler         model.Scaler
	)
	decodes := []struct {
		file   string
		target interface{}
	}{
		{manifest.Classifier, &classifier},
		{manifest.FeatureColumns, &featureColumns},
		{manifest.TargetColumns, &bundle.Targets},
		{manifest.AnomalyModel, &svm},
		{manifest.Scaler, &scaler},
		{manifest.AnomalyColumns, &anomalyColumns},
		{manifest.FeatureMedians, &bundle.FeatureMedians},
	}
	for _, d := range decodes {
		if err := readJSON(filepath.Join(dir, d.file), d.target); err != nil {
			return nil, err
		}
	}

	if bundle.FeatureSchema, err = features.NewSchema(featureColumns); err != nil {
		return nil, errors.Wrap(err, manifest.FeatureColumns)
	}
	if bundle.AnomalySchema, err = features.NewSchema(anomalyColumns); err != nil {
		return nil, errors.Wrap(err, manifest.AnomalyColumns)
	}
	if len(bundle.Targets) == 0 {
		return nil, errors.Errorf("%s declares no target columns", manifest.TargetColumns)
	}
	if err := classifier.Validate(bundle.FeatureSchema.Len(), len(bundle.Targets)); err != nil {
		return nil, errors.Wrap(err, manifest.Classifier)
	}
	if err := svm.Validate(bundle.AnomalySchema.Len()); err != nil {
		return nil, errors.Wrap(err, manifest.AnomalyModel)
	}
	if err := scaler.Validate(bundle.AnomalySchema.Len()); err != nil {
		return nil, errors.Wrap(err, manifest.Scaler)
	}
	for name := range bundle.FeatureMedians {
		if _, ok := bundle.AnomalySchema.Index(name); !ok {
			lc.Warnf("median for %s is not an anomaly feature column, ignoring it", name)
		}
	}
	bundle.Classifier = &classifier
	bundle.AnomalyModel = &svm
	bundle.Scaler = &scaler

	lc.Infof("loaded model artifacts from %s: %d classifier features, %d sensors, %d anomaly features",
		dir, bundle.FeatureSchema.Len(), len(bundle.Targets), bundle.AnomalySchema.Len())
	return &bundle, nil
}

func readJSON(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return errors.Wrapf(err, "failed to decode %s", path)
	}
	return nil
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package simulator

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"algae-monitor/algae-ml-service/pkg/dto"
	"algae-monitor/algae-ml-service/pkg/features"
	"algae-monitor/common/client"
)

const DefaultInterval = 30 * time.Second

// sampleFields are echoed in the log for every row sent.
var sampleFields = []string{"temperature_C", "pH", "dissolved_oxygen_mg_per_L"}

// Simulator replays recorded sensor rows against the inference service, one row per tick.
type Simulator struct {
	baseURL    string
	httpClient client.HTTPClient
	lc         logger.LoggingClient
	rows       []map[string]interface{}

	mu   sync.Mutex
	next int
}

func NewSimulator(baseURL string, httpClient client.HTTPClient, lc logger.LoggingClient) *Simulator {
	return &Simulator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		lc:         lc,
	}
}

// Load replaces the rows to replay with the content of a CSV file.
func (s *Simulator) Load(path string) (int, error) {
	rows, err := LoadCSV(path)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.rows = rows
	s.next = 0
	s.mu.Unlock()
	return len(rows), nil
}

// LoadCSV reads the rows of a CSV file with a header line. Empty and NaN cells
// become nulls, numeric cells numbers and anything else is kept as text.
func LoadCSV(path string) ([]map[string]interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "CSV file not found")
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	if len(records) < 2 {
		return nil, errors.Errorf("%s has no data rows", path)
	}

	header := records[0]
	rows := make([]map[string]interface{}, 0, len(records)-1)
	for n, record := range records[1:] {
		raw := make(map[string]interface{}, len(header))
		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" || i >= len(record) {
				continue
			}
			raw[name] = record[i]
		}
		row, err := features.FromMap(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "%s row %d", path, n+1)
		}
		rows = append(rows, row.ToMap())
	}
	return rows, nil
}

func (s *Simulator) CheckHealth(ctx context.Context) error {
	resp, err := s.get(ctx, client.HealthPath)
	if err != nil {
		return errors.Wrap(err, "health check failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("health check failed with status %d", resp.StatusCode)
	}
	return nil
}

// ProbeLatest reports whether the service already has a prediction to show.
func (s *Simulator) ProbeLatest(ctx context.Context) bool {
	resp, err := s.get(ctx, client.LatestPredictionPath)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// SendNext posts the next row, cycling back to the first one after the last.
func (s *Simulator) SendNext(ctx context.Context) (*dto.SystemStatusResponse, error) {
	s.mu.Lock()
	total := len(s.rows)
	if total == 0 {
		s.mu.Unlock()
		return nil, errors.New("no rows to send")
	}
	index := s.next
	row := s.rows[index]
	s.next = (s.next + 1) % total
	s.mu.Unlock()

	s.lc.Infof("Sending row %d of %d", index+1, total)
	for _, field := range sampleFields {
		if v, ok := row[field]; ok {
			s.lc.Infof("  %s: %v", field, v)
		}
	}

	body, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+client.PredictPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to send data")
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: status %d, response: %s", resp.StatusCode, string(payload))
	}

	var result dto.SystemStatusResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, errors.Wrap(err, "failed to decode prediction")
	}
	s.lc.Infof("Anomaly detected: %t, anomaly score: %f", result.RowAnomaly, result.RowScore)
	if len(result.SensorFaults) > 0 {
		s.lc.Infof("Sensor faults: %s", strings.Join(result.SensorFaults, ", "))
	}
	return &result, nil
}

// Run sends a row right away and then one per interval until ctx is cancelled.
func (s *Simulator) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	tick := func() {
		if _, err := s.SendNext(ctx); err != nil {
			s.lc.Errorf("Failed to send data: %v", err)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc("@every "+interval.String(), tick); err != nil {
		return errors.Wrap(err, "invalid send interval")
	}
	tick()
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	s.lc.Info("Simulation stopped")
	return nil
}

func (s *Simulator) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return s.httpClient.Do(req)
}

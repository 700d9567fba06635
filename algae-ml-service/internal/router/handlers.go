/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package router

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"algae-monitor/algae-ml-service/internal/state"
	"algae-monitor/algae-ml-service/pkg/dto"
	"algae-monitor/algae-ml-service/pkg/prediction"
	algaeErrors "algae-monitor/common/errors"
)

func (r *Router) predict(c echo.Context) *echo.HTTPError {
	lc := r.service.LoggingClient()

	var input dto.SensorReadingInput
	if err := json.NewDecoder(c.Request().Body).Decode(&input); err != nil {
		lc.Errorf("Failed to decode request body into SensorReadingInput: %v", err)
		return algaeErrors.NewCommonServiceError(algaeErrors.ErrorTypeValidation, "Invalid request body: "+err.Error()).ConvertToHTTPError()
	}
	if err := r.validate.Struct(&input); err != nil {
		lc.Errorf("Failed to validate sensor reading: %v", err)
		return algaeErrors.NewCommonServiceError(algaeErrors.ErrorTypeValidation, "Invalid sensor reading: "+err.Error()).ConvertToHTTPError()
	}

	if raw := c.QueryParam("anomaly_threshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			err = r.store.SetThreshold(threshold)
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid parameter anomaly_threshold: "+raw)
		}
		lc.Infof("Anomaly threshold set to %v", threshold)
	}

	topN := r.appConfig.DefaultTopN
	if raw := c.QueryParam("top_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid parameter top_n: "+raw)
		}
		topN = n
	}

	started := time.Now()
	record := input.ToRecord()
	threshold := r.store.Threshold()
	result, err := r.predictor.Predict(record, prediction.Options{TopN: topN, Threshold: &threshold})
	if err != nil {
		r.telemetry.ObserveError()
		lc.Errorf("Prediction failed: %v", err)
		return algaeErrors.NewCommonServiceError(algaeErrors.ErrorTypeServerError, "Prediction error: "+err.Error()).ConvertToHTTPError()
	}
	r.telemetry.ObservePrediction(len(result.SensorFaults), result.RowAnomaly, started)
	r.store.RecordPrediction(record.ToMap(), result)

	_ = c.JSON(http.StatusOK, result)
	return nil
}

func (r *Router) health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "healthy"})
}

func (r *Router) latestPrediction(c echo.Context) *echo.HTTPError {
	latest, found := r.store.Latest()
	if !found {
		return algaeErrors.NewCommonServiceError(algaeErrors.ErrorTypeNotFound, "No predictions made yet").ConvertToHTTPError()
	}
	_ = c.JSON(http.StatusOK, latest)
	return nil
}

func (r *Router) getThreshold(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.ThresholdResponse{Threshold: r.store.Threshold()})
}

func (r *Router) setThreshold(c echo.Context) *echo.HTTPError {
	raw := c.QueryParam("threshold")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing parameter threshold")
	}
	threshold, err := strconv.ParseFloat(raw, 64)
	if err == nil {
		err = r.store.SetThreshold(threshold)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid parameter threshold: "+raw)
	}
	r.service.LoggingClient().Infof("Anomaly threshold set to %v", threshold)
	_ = c.JSON(http.StatusOK, dto.ThresholdResponse{Threshold: threshold})
	return nil
}

func (r *Router) scoreQuantiles(c echo.Context) error {
	return c.JSON(http.StatusOK, r.store.ScoreQuantiles(state.DefaultQuantiles))
}

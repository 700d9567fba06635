/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package router

import (
	"net/http"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/labstack/echo/v4"

	"algae-monitor/common/client"
)

func (r *Router) addAlgaeRoutes() {
	r.addPredictRoute()
	r.addHealthRoute()
	r.addLatestPredictionRoute()
	r.addGetThresholdRoute()
	r.addSetThresholdRoute()
	r.addScoreQuantilesRoute()
}

// @Summary      Predict sensor faults and row anomaly
// @Description  Classifies each monitored sensor as faulty or healthy, explains the flagged ones and scores the whole reading for anomalies.
// @Tags         Algae Monitoring
// @Param        anomaly_threshold  query    number                  false "New anomaly threshold, kept for later requests."
// @Param        top_n              query    int                     false "Number of contributing features to report."
// @Param        Body               body     dto.SensorReadingInput  true  "Sensor reading."
// @Success      200                {object} dto.SystemStatusResponse
// @Failure			400			{object}	error	"{"message":"Error message"}"
// @Failure			422			{object}	error	"{"message":"Error message"}"
// @Failure			500			{object}	error	"{"message":"Error message"}"
// @Router       /api/v3/algae/predict [post]
func (r *Router) addPredictRoute() {
	_ = r.service.AddCustomRoute(
		client.PredictPath,
		interfaces.Authenticated,
		func(c echo.Context) error {
			if err := r.predict(c); err != nil {
				return err
			}
			return nil
		},
		http.MethodPost)
}

// @Summary      Health check
// @Tags         Algae Monitoring
// @Success      200  {object} dto.HealthResponse
// @Router       /api/v3/algae/health [get]
func (r *Router) addHealthRoute() {
	_ = r.service.AddCustomRoute(
		client.HealthPath,
		interfaces.Authenticated,
		func(c echo.Context) error {
			return r.health(c)
		},
		http.MethodGet)
}

// @Summary      Latest prediction
// @Description  Returns the last input, its prediction and the anomaly threshold currently in force.
// @Tags         Algae Monitoring
// @Success      200  {object} dto.LatestPrediction
// @Failure			404			{object}	error	"{"message":"Error message"}"
// @Router       /api/v3/algae/latest-prediction [get]
func (r *Router) addLatestPredictionRoute() {
	_ = r.service.AddCustomRoute(
		client.LatestPredictionPath,
		interfaces.Authenticated,
		func(c echo.Context) error {
			if err := r.latestPrediction(c); err != nil {
				return err
			}
			return nil
		},
		http.MethodGet)
}

// @Summary      Get anomaly threshold
// @Tags         Algae Monitoring
// @Success      200  {object} dto.ThresholdResponse
// @Router       /api/v3/algae/threshold [get]
func (r *Router) addGetThresholdRoute() {
	_ = r.service.AddCustomRoute(
		client.ThresholdPath,
		interfaces.Authenticated,
		func(c echo.Context) error {
			return r.getThreshold(c)
		},
		http.MethodGet)
}

// @Summary      Set anomaly threshold
// @Description  Rows scoring below the threshold are reported as anomalous.
// @Tags         Algae Monitoring
// @Param        threshold  query    number  true  "New anomaly threshold."
// @Success      200        {object} dto.ThresholdResponse
// @Failure			400			{object}	error	"{"message":"Error message"}"
// @Router       /api/v3/algae/threshold [post]
func (r *Router) addSetThresholdRoute() {
	_ = r.service.AddCustomRoute(
		client.ThresholdPath,
		interfaces.Authenticated,
		func(c echo.Context) error {
			if err := r.setThreshold(c); err != nil {
				return err
			}
			return nil
		},
		http.MethodPost)
}

// @Summary      Row score quantiles
// @Description  Quantiles of every row anomaly score observed since start-up, useful to tune the threshold.
// @Tags         Algae Monitoring
// @Success      200  {object} dto.ScoreQuantilesResponse
// @Router       /api/v3/algae/score-quantiles [get]
func (r *Router) addScoreQuantilesRoute() {
	_ = r.service.AddCustomRoute(
		client.ScoreQuantilesPath,
		interfaces.Authenticated,
		func(c echo.Context) error {
			return r.scoreQuantiles(c)
		},
		http.MethodGet)
}

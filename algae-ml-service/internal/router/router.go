/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package router

import (
	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/go-playground/validator/v10"

	"algae-monitor/algae-ml-service/internal/config"
	"algae-monitor/algae-ml-service/internal/state"
	"algae-monitor/algae-ml-service/pkg/dto"
	"algae-monitor/algae-ml-service/pkg/prediction"
	"algae-monitor/common/telemetry"
)

type Router struct {
	service   interfaces.ApplicationService
	appConfig *config.InferenceConfig
	predictor *prediction.Predictor
	store     *state.StatusStore
	telemetry *telemetry.InferenceTelemetry
	validate  *validator.Validate
}

func NewRouter(
	service interfaces.ApplicationService,
	appConfig *config.InferenceConfig,
	predictor *prediction.Predictor,
	store *state.StatusStore,
	tel *telemetry.InferenceTelemetry,
) *Router {
	return &Router{
		service:   service,
		appConfig: appConfig,
		predictor: predictor,
		store:     store,
		telemetry: tel,
		validate:  dto.NewValidator(),
	}
}

func (r *Router) AddRoutes() {
	r.addAlgaeRoutes()
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	bootstrapinterfaces "github.com/edgexfoundry/go-mod-bootstrap/v3/bootstrap/interfaces"

	"algae-monitor/algae-ml-service/internal/broker"
	"algae-monitor/algae-ml-service/internal/config"
	"algae-monitor/algae-ml-service/internal/router"
	"algae-monitor/algae-ml-service/internal/state"
	"algae-monitor/algae-ml-service/pkg/artifacts"
	"algae-monitor/algae-ml-service/pkg/prediction"
	"algae-monitor/common/client"
	commService "algae-monitor/common/service"
	"algae-monitor/common/telemetry"
)

const (
	pipelineId          = "algae-inference-pipeline"
	defaultSubscription = "events/device/#"
)

var (
	serviceInt        interfaces.ApplicationService
	appServiceCreator commService.AppServiceCreator
	osExit            = os.Exit
)

func getAppService() {
	if appServiceCreator == nil {
		appServiceCreator = commService.SDKAppServiceCreator{}
	}
	svc, ok := appServiceCreator.NewAppService(client.AlgaeMLInferenceServiceKey)
	if !ok {
		fmt.Printf("Failed to start App Service: %s\n", client.AlgaeMLInferenceServiceKey)
		exitWrapper(-1)
	} else {
		serviceInt = svc
	}
}

func main() {
	if serviceInt == nil {
		getAppService()
	}
	svc := serviceInt
	if svc == nil {
		return
	}
	lc := svc.LoggingClient()

	appConfig := config.NewInferenceConfig()
	appConfig.LoadConfigurations(svc)

	// the service cannot answer anything without its models
	bundle, err := artifacts.Load(appConfig.ModelDir, lc)
	if err != nil {
		lc.Errorf("Failed to load model artifacts: %v", err)
		exitWrapper(-1)
		return
	}
	predictor, err := prediction.NewPredictor(bundle, lc)
	if err != nil {
		lc.Errorf("Failed to create predictor: %v", err)
		exitWrapper(-1)
		return
	}
	store, err := state.NewStatusStore(appConfig.DefaultAnomalyThreshold)
	if err != nil {
		lc.Errorf("Invalid DefaultAnomalyThreshold %v: %v", appConfig.DefaultAnomalyThreshold, err)
		exitWrapper(-1)
		return
	}

	var registry bootstrapinterfaces.MetricsManager
	metricsManager, err := telemetry.NewMetricsManager(svc, client.AlgaeMLInferenceServiceName)
	if err != nil {
		lc.Warnf("Metrics reporting disabled: %v", err)
	} else {
		registry = metricsManager.MetricsMgr
		metricsManager.Run(context.Background())
	}
	tel := telemetry.NewInferenceTelemetry(client.AlgaeMLInferenceServiceName, registry)

	router.NewRouter(svc, appConfig, predictor, store, tel).AddRoutes()

	mqttSender, err := commService.NewMqttSender(svc, appConfig.PublishPredictionTopic, client.AlgaeMLInferenceServiceKey, appConfig.PersistOnError)
	if err != nil {
		lc.Errorf("Failed to create MQTT export, predictions will not be published: %v", err)
	}
	inf := broker.NewAlgaeInferencing(svc, appConfig, predictor, store, tel, mqttSender)

	topics, err := svc.GetAppSettingStrings("SubscribeTopics")
	if err != nil || len(topics) == 0 {
		topics = []string{defaultSubscription}
	}
	lc.Infof("subscribedTopics: %v", topics)

	err = svc.AddFunctionsPipelineForTopics(pipelineId, topics,
		inf.FilterBySensorProfile,
		inf.ConvertToRecord,
		inf.Predict,
		inf.PublishPrediction,
	)
	if err != nil {
		lc.Errorf("AddFunctionsPipelineForTopics returned error: %s", err.Error())
		exitWrapper(-1)
		return
	}

	err = svc.Run()
	if err != nil {
		lc.Errorf("Run returned error: %s", err.Error())
		exitWrapper(-1)
		return
	}

	lc.Info("algae ml inference service terminating")
	exitWrapper(0)
}

func exitWrapper(code int) {
	osExit(code)
}

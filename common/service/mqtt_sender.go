/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package service

import (
	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/transforms"

	"algae-monitor/common/config"
)

// MqttSender is the part of the SDK MQTT export that publishers depend on.
type MqttSender interface {
	MQTTSend(ctx interfaces.AppFunctionContext, data interface{}) (bool, interface{})
}

// NewMqttSender builds an MQTT export for topic under the message bus base topic prefix.
func NewMqttSender(service interfaces.ApplicationService, topic string, clientId string, persistOnError bool) (MqttSender, error) {
	mqttConfig, err := config.BuildMQTTSecretConfig(service, topic, clientId)
	if err != nil {
		return nil, err
	}
	service.LoggingClient().Infof("MQTT export configured for topic %s", mqttConfig.Topic)
	return transforms.NewMQTTSecretSender(mqttConfig, persistOnError), nil
}

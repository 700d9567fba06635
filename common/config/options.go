/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package config

import (
	"strconv"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
)

// GetPersistOnError tells the MQTT export whether to keep failed publishes for retry.
func GetPersistOnError(service interfaces.ApplicationService) bool {
	lc := service.LoggingClient()
	persistOnError, err := service.GetAppSetting("PersistOnError")
	if err != nil || persistOnError == "" {
		lc.Debugf("PersistOnError not set, defaulting to false")
		return false
	}
	enabled, err := strconv.ParseBool(persistOnError)
	if err != nil {
		lc.Errorf("Invalid value specified for PersistOnError in configuration: %s", err.Error())
		return false
	}
	return enabled
}

func GetMQTTQoS(service interfaces.ApplicationService) byte {
	lc := service.LoggingClient()
	qos, err := service.GetAppSetting("QoS")
	if err != nil {
		lc.Errorf("failed to retrieve QoS from configuration: %s", err.Error())
		qos = "0"
	}
	switch qos {
	case "1":
		return 1
	case "2":
		return 2
	default:
		lc.Debugf("MqttQoS configuration defaulting to 0")
		return 0
	}
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/transforms"
	"github.com/lithammer/shortuuid/v3"
)

const (
	defaultTopicPrefix = "algae"
	defaultScheme      = "tcp"
	defaultMqttServer  = "edgex-mqtt-broker"
	defaultMqttPort    = "1883"
	defaultAuthMode    = "none"
	defaultSecretName  = "mbconnection"
)

// MQTTSettings are the broker connection settings shared by every MQTT publisher of a service.
type MQTTSettings struct {
	Scheme     string
	Server     string
	Port       int64
	AuthMode   string
	SecretName string
	QoS        byte
}

func (s MQTTSettings) BrokerAddress() string {
	return fmt.Sprintf("%s://%s:%d", s.Scheme, s.Server, s.Port)
}

// LoadMQTTSettings reads the broker settings from the application settings, falling back to defaults.
func LoadMQTTSettings(service interfaces.ApplicationService) (MQTTSettings, error) {
	lc := service.LoggingClient()
	settings := MQTTSettings{
		Scheme:     appSettingOrDefault(service, "scheme", defaultScheme),
		Server:     appSettingOrDefault(service, "MqttServer", defaultMqttServer),
		AuthMode:   appSettingOrDefault(service, "MqttAuthMode", defaultAuthMode),
		SecretName: appSettingOrDefault(service, "MqttSecretName", defaultSecretName),
		QoS:        GetMQTTQoS(service),
	}
	port, err := strconv.ParseInt(appSettingOrDefault(service, "MqttPort", defaultMqttPort), 10, 64)
	if err != nil {
		return settings, fmt.Errorf("invalid MqttPort: %v", err)
	}
	settings.Port = port
	lc.Infof("MQTT broker is %s, AuthMode is %s, SecretName is %s", settings.BrokerAddress(), settings.AuthMode, settings.SecretName)
	return settings, nil
}

func GenerateClientId(clientId string) string {
	return clientId + "-" + shortuuid.New()
}

// BuildMQTTSecretConfig builds the export configuration for publishing to topic under the base topic prefix.
func BuildMQTTSecretConfig(service interfaces.ApplicationService, topic string, clientId string) (transforms.MQTTSecretConfig, error) {
	settings, err := LoadMQTTSettings(service)
	if err != nil {
		return transforms.MQTTSecretConfig{}, err
	}
	return transforms.MQTTSecretConfig{
		BrokerAddress:  settings.BrokerAddress(),
		ClientId:       GenerateClientId(clientId),
		SecretName:     settings.SecretName,
		AutoReconnect:  true,
		KeepAlive:      "30s",
		ConnectTimeout: "60s",
		Topic:          BuildTopicNameFromBaseTopicPrefix(topic, "/"),
		QoS:            settings.QoS,
		Retain:         false,
		SkipCertVerify: true,
		AuthMode:       settings.AuthMode, // usernamepassword or none
	}, nil
}

func BuildTopicNameFromBaseTopicPrefix(topic string, separator string) string {
	prefix := os.Getenv("MESSAGEBUS_BASETOPICPREFIX")
	if prefix == "" {
		prefix = defaultTopicPrefix
	}
	if !strings.HasPrefix(topic, prefix) {
		return prefix + separator + topic
	}
	return topic
}

func appSettingOrDefault(service interfaces.ApplicationService, key string, fallback string) string {
	value, err := service.GetAppSetting(key)
	if err != nil || value == "" {
		return fallback
	}
	return value
}

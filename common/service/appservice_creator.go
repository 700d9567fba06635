/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package service

import (
	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg"
	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
)

// AppServiceCreator builds the EdgeX application service for a service key.
// The inference entry point swaps it out in tests.
type AppServiceCreator interface {
	NewAppService(serviceKey string) (interfaces.ApplicationService, bool)
}

// SDKAppServiceCreator bootstraps through the app-functions SDK.
type SDKAppServiceCreator struct{}

func (SDKAppServiceCreator) NewAppService(serviceKey string) (interfaces.ApplicationService, bool) {
	return pkg.NewAppService(serviceKey)
}

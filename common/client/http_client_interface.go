/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package client

import (
	"net/http"
	"time"
)

// HTTPClient is the subset of http.Client the services call, swappable in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var Client HTTPClient

func init() {
	if Client == nil {
		Client = &http.Client{Timeout: 10 * time.Second}
	}
}

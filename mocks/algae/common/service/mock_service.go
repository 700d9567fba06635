package service

import (
	"net/http"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockAppServiceCreator is a mock implementation for the AppServiceCreator interface
type MockAppServiceCreator struct {
	mock.Mock
}

func (m *MockAppServiceCreator) NewAppService(serviceKey string) (interfaces.ApplicationService, bool) {
	args := m.Called(serviceKey)
	var svc interfaces.ApplicationService
	if args.Get(0) != nil {
		svc = args.Get(0).(interfaces.ApplicationService)
	}
	return svc, args.Bool(1)
}

// MockHTTPClient is a mock implementation for the HTTPClient interface
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	var resp *http.Response
	if args.Get(0) != nil {
		resp = args.Get(0).(*http.Response)
	}
	return resp, args.Error(1)
}

// MockMQTTSender is a mock implementation for the MQTT export used by publishers
type MockMQTTSender struct {
	mock.Mock
}

func (m *MockMQTTSender) MQTTSend(ctx interfaces.AppFunctionContext, data interface{}) (bool, interface{}) {
	args := m.Called(ctx, data)
	return args.Bool(0), args.Get(1)
}

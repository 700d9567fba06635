package utils

import (
	"context"
	"strings"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces/mocks"
	bootstrapmocks "github.com/edgexfoundry/go-mod-bootstrap/v3/bootstrap/interfaces/mocks"
	loggermocks "github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"

	algaeErrors "algae-monitor/common/errors"
)

type AlgaeMockUtils struct {
	AppService         *mocks.ApplicationService
	AppSettings        map[string]string
	AppFunctionContext *mocks.AppFunctionContext
	Logger             *loggermocks.LoggingClient
}

// NewMockLogger accepts any log call.
func NewMockLogger() *loggermocks.LoggingClient {
	mockLogger := &loggermocks.LoggingClient{}
	for _, method := range []string{"Debug", "Info", "Warn", "Error", "Trace"} {
		mockLogger.On(method, mock.Anything).Return()
		mockLogger.On(method, mock.Anything, mock.Anything).Return()
		mockLogger.On(method, mock.Anything, mock.Anything, mock.Anything).Return()
	}
	for _, method := range []string{"Debugf", "Infof", "Warnf", "Errorf", "Tracef"} {
		args := []interface{}{mock.Anything}
		for i := 0; i < 8; i++ {
			mockLogger.On(method, args...).Return()
			args = append(args, mock.Anything)
		}
	}
	return mockLogger
}

func NewApplicationServiceMock(appSettings map[string]string) *AlgaeMockUtils {
	mockUtils := new(AlgaeMockUtils)
	mockLogger := NewMockLogger()
	mockUtils.Logger = mockLogger

	mockAppService := &mocks.ApplicationService{}
	mockUtils.AppService = mockAppService
	mockAppService.On("LoggingClient").Return(mockLogger)
	mockAppService.On("AppContext").Return(context.Background())

	mockUtils.AppSettings = make(map[string]string)
	for k, v := range appSettings {
		mockUtils.AppSettings[k] = v
		if strings.HasPrefix(v, "ERR:") {
			e := errors.New(v)
			mockAppService.On("GetAppSetting", k).Return("", e)
			mockAppService.On("GetAppSettingStrings", k).Return([]string{}, e)
		} else {
			mockAppService.On("GetAppSetting", k).Return(v, nil)
			mockAppService.On("GetAppSettingStrings", k).Return([]string{v}, nil)
		}
	}
	mockAppService.On("GetAppSetting", mock.Anything).Return("", nil)
	mockAppService.On("GetAppSettingStrings", mock.Anything).Return([]string{}, nil)

	ctx := &mocks.AppFunctionContext{}
	ctx.On("LoggingClient").Return(mockLogger)
	ctx.On("PipelineId").Return("erty-876trfv-dsdf")
	ctx.On("CorrelationID").Return("erty-876trfv-dsdf2")
	mockUtils.AppFunctionContext = ctx
	mockAppService.On("BuildContext", mock.Anything, mock.Anything).Return(ctx)

	mockSecretProvider := &bootstrapmocks.SecretProvider{}
	mockSecretProvider.On("GetSecret", "mbconnection").Return(map[string]string{}, nil)
	mockSecretProvider.On("GetSecret", "mbconnectionerror").Return(map[string]string{}, algaeErrors.NewCommonServiceError(algaeErrors.ErrorTypeServerError, "mocked error"))
	mockAppService.On("SecretProvider").Return(mockSecretProvider)

	return mockUtils
}

// InitMQTTSettings registers the broker settings ahead of the catch-all expectations.
func (m *AlgaeMockUtils) InitMQTTSettings() {
	settings := map[string]string{
		"scheme":       "tcp",
		"MqttServer":   "vm-loc-xxxx",
		"MqttPort":     "1883",
		"MqttAuthMode": "usernamepassword",
		"QoS":          "1",
	}
	existing := len(m.AppService.ExpectedCalls)
	for k, v := range settings {
		m.AppSettings[k] = v
		m.AppService.On("GetAppSetting", k).Return(v, nil)
	}
	added := append([]*mock.Call{}, m.AppService.ExpectedCalls[existing:]...)
	m.AppService.ExpectedCalls = append(added, m.AppService.ExpectedCalls[:existing]...)
}

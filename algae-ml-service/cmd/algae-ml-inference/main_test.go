package main

import (
	"errors"
	"testing"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"algae-monitor/common/client"
	commService "algae-monitor/common/service"
	"algae-monitor/mocks/algae/common/infrastructure/interfaces/utils"
	svcmocks "algae-monitor/mocks/algae/common/service"
)

const fixtureModelDir = "../../pkg/artifacts/testdata/models"

func mockExit(t *testing.T) *int {
	t.Helper()
	code := 1
	originalOsExit := osExit
	osExit = func(c int) {
		code = c
	}
	t.Cleanup(func() {
		osExit = originalOsExit
		serviceInt = nil
		appServiceCreator = nil
	})
	return &code
}

func newServiceMock(settings map[string]string, runErr error) *mocks.ApplicationService {
	appSvcMock := utils.NewApplicationServiceMock(settings).AppService
	appSvcMock.On("AddCustomRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	appSvcMock.On("AddFunctionsPipelineForTopics", mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	appSvcMock.On("Run").Return(runErr)
	return appSvcMock
}

func TestGetAppService(t *testing.T) {
	mockExit(t)
	appSvcMock := utils.NewApplicationServiceMock(nil).AppService
	mockCreator := &svcmocks.MockAppServiceCreator{}
	mockCreator.On("NewAppService", client.AlgaeMLInferenceServiceKey).Return(appSvcMock, true)
	appServiceCreator = mockCreator

	getAppService()
	assert.Equal(t, appSvcMock, serviceInt, "Service should be assigned correctly")
}

func TestGetAppService_DefaultCreator(t *testing.T) {
	var creator commService.AppServiceCreator = commService.SDKAppServiceCreator{}
	assert.NotNil(t, creator)
	var _ commService.AppServiceCreator = &svcmocks.MockAppServiceCreator{}
}

func TestGetAppService_Failure(t *testing.T) {
	exitCode := mockExit(t)
	mockCreator := &svcmocks.MockAppServiceCreator{}
	mockCreator.On("NewAppService", client.AlgaeMLInferenceServiceKey).Return(nil, false)
	appServiceCreator = mockCreator

	getAppService()
	assert.Equal(t, -1, *exitCode, "os.Exit should be called with -1")
	assert.Nil(t, serviceInt)
}

func Test_main_Success(t *testing.T) {
	exitCode := mockExit(t)
	appSvcMock := newServiceMock(map[string]string{
		"ModelDir":             fixtureModelDir,
		"MetricReportInterval": "30",
	}, nil)
	serviceInt = appSvcMock

	main()

	assert.Equal(t, 0, *exitCode)
	appSvcMock.AssertNumberOfCalls(t, "AddCustomRoute", 6)
	appSvcMock.AssertCalled(t, "AddFunctionsPipelineForTopics", pipelineId, []string{defaultSubscription},
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	appSvcMock.AssertCalled(t, "Run")
}

func Test_main_MissingModels(t *testing.T) {
	exitCode := mockExit(t)
	appSvcMock := newServiceMock(map[string]string{"ModelDir": t.TempDir()}, nil)
	serviceInt = appSvcMock

	main()

	assert.Equal(t, -1, *exitCode)
	appSvcMock.AssertNotCalled(t, "Run")
}

func Test_main_RunFailure(t *testing.T) {
	exitCode := mockExit(t)
	serviceInt = newServiceMock(map[string]string{"ModelDir": fixtureModelDir}, errors.New("mocked error"))

	main()

	assert.Equal(t, -1, *exitCode)
}

package telemetry

import (
	"testing"
	"time"

	"github.com/edgexfoundry/go-mod-bootstrap/v3/bootstrap/interfaces/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestInferenceTelemetry(t *testing.T) {
	manager := &mocks.MetricsManager{}
	manager.On("Register", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	tel := NewInferenceTelemetry("algae-ml-inference", manager)
	manager.AssertNumberOfCalls(t, "Register", 5)
	manager.AssertCalled(t, "Register", PredictionsCount, tel.Predictions, mock.Anything)

	started := time.Now().Add(-5 * time.Millisecond)
	tel.ObservePrediction(2, true, started)
	tel.ObservePrediction(0, false, started)
	tel.ObserveError()

	assert.Equal(t, int64(2), tel.Predictions.Count())
	assert.Equal(t, int64(2), tel.SensorFaults.Count())
	assert.Equal(t, int64(1), tel.RowAnomalies.Count())
	assert.Equal(t, int64(1), tel.PredictionErrors.Count())
	assert.Equal(t, int64(2), tel.Duration.Count())
}

func TestInferenceTelemetry_WithoutManager(t *testing.T) {
	tel := NewInferenceTelemetry("algae-ml-inference", nil)
	tel.ObservePrediction(1, false, time.Now())
	assert.Equal(t, int64(1), tel.Predictions.Count())
}

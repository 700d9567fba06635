package telemetry

const (
	MetricPrefix          = "algae_"
	PredictionsCount      = "algae_predictions_count"
	PredictionErrorsCount = "algae_prediction_errors_count"
	SensorFaultsCount     = "algae_sensor_faults_count"
	RowAnomaliesCount     = "algae_row_anomalies_count"
	PredictionDuration    = "algae_prediction_duration"
)

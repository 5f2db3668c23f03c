package metrics

import "time"

type Metrics interface {
	// Business
	RecordWrite(entity, operation, outcome string)
	RecordGuardRejection(rule string)
	RecordUseCaseExecution(useCaseName string, success bool, duration time.Duration)

	// Infrastructure (HTTP)
	ObserveHTTPRequestDuration(method, path, statusCode string, duration float64)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct{ method, path, status string }

type fakeMetrics struct {
	observed []observation
}

func (f *fakeMetrics) RecordWrite(string, string, string)                 {}
func (f *fakeMetrics) RecordGuardRejection(string)                        {}
func (f *fakeMetrics) RecordUseCaseExecution(string, bool, time.Duration) {}
func (f *fakeMetrics) ObserveHTTPRequestDuration(method, path, status string, _ float64) {
	f.observed = append(f.observed, observation{method, path, status})
}

func TestMetricsWrapper(t *testing.T) {
	//Arrange
	m := &fakeMetrics{}
	r := chi.NewRouter()
	r.Use(MetricsWrapper(m, "/health"))
	r.Get("/api/v1/courses/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {})

	//Act
	for _, path := range []string{"/api/v1/courses/7", "/health"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	//Assert
	require.Len(t, m.observed, 1)
	assert.Equal(t, observation{"GET", "/api/v1/courses/{id}", "404"}, m.observed[0])
}

func TestGetStatusString(t *testing.T) {
	assert.Equal(t, "200", getStatusString(200))
	assert.Equal(t, "599", getStatusString(599))
	assert.Equal(t, "700", getStatusString(700))
}

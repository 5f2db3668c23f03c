package web_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DioGolang/GoUniversity/internal/application/usecase/academic"
	"github.com/DioGolang/GoUniversity/internal/domain/entity"
	"github.com/DioGolang/GoUniversity/internal/infra/database"
	"github.com/DioGolang/GoUniversity/internal/infra/database/databasetest"
	"github.com/DioGolang/GoUniversity/internal/infra/web"
	"github.com/DioGolang/GoUniversity/internal/infra/web/handler"
	"github.com/DioGolang/GoUniversity/pkg/logger"
	"github.com/DioGolang/GoUniversity/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	db := databasetest.Open(t)
	m := metrics.NewPrometheusMetrics(prometheus.NewRegistry(), "university-test")
	svc := academic.NewMetricsDecorator(
		academic.NewService(database.NewUnitOfWorkFactory(db, logger.NewNop()), logger.NewNop()), m)
	health, err := handler.NewHealthHandler("university-test", "test", handler.WithDatabase(db))
	require.NoError(t, err)

	srv := httptest.NewServer(web.NewRouter(web.RouterConfig{
		ServiceName: "university-test",
		UseCase:     svc,
		Logger:      logger.NewNop(),
		Metrics:     m,
		Health:      health,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	}
	return resp.StatusCode, raw
}

func decodeAs[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestRouter_CourseLifecycle(t *testing.T) {
	srv := newServer(t)

	status, raw := do(t, srv, http.MethodPost, "/api/v1/courses", `{"name":"Course One","description":"Desc 1"}`)
	require.Equal(t, http.StatusCreated, status)
	course := decodeAs[entity.Course](t, raw)
	assert.NotZero(t, course.CourseID)
	assert.Equal(t, int64(1), course.Version)

	status, raw = do(t, srv, http.MethodPost, "/api/v1/groups",
		fmt.Sprintf(`{"course_id":%d,"name":"SR-01"}`, course.CourseID))
	require.Equal(t, http.StatusCreated, status)
	group := decodeAs[entity.Group](t, raw)

	status, raw = do(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/courses/%d/groups", course.CourseID), "")
	require.Equal(t, http.StatusOK, status)
	groups := decodeAs[[]entity.Group](t, raw)
	require.Len(t, groups, 1)
	assert.Equal(t, "SR-01", groups[0].Name)
	require.NotNil(t, groups[0].Course)
	assert.Equal(t, "Course One", groups[0].Course.Name)

	status, raw = do(t, srv, http.MethodDelete, fmt.Sprintf("/api/v1/courses/%d", course.CourseID), "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, string(raw), entity.RuleNotEmptyCourse)

	status, _ = do(t, srv, http.MethodDelete, fmt.Sprintf("/api/v1/groups/%d", group.GroupID), "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = do(t, srv, http.MethodDelete, fmt.Sprintf("/api/v1/courses/%d", course.CourseID), "")
	assert.Equal(t, http.StatusNoContent, status)

	status, raw = do(t, srv, http.MethodGet, "/api/v1/courses", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestRouter_StudentUpdate(t *testing.T) {
	srv := newServer(t)
	_, raw := do(t, srv, http.MethodPost, "/api/v1/courses", `{"name":"Course One","description":"Desc 1"}`)
	course := decodeAs[entity.Course](t, raw)
	_, raw = do(t, srv, http.MethodPost, "/api/v1/groups", fmt.Sprintf(`{"course_id":%d,"name":"SR-01"}`, course.CourseID))
	group := decodeAs[entity.Group](t, raw)
	_, raw = do(t, srv, http.MethodPost, "/api/v1/students",
		fmt.Sprintf(`{"group_id":%d,"first_name":"Ivan","last_name":"Petrenko"}`, group.GroupID))
	student := decodeAs[entity.Student](t, raw)
	path := fmt.Sprintf("/api/v1/students/%d", student.StudentID)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "body without id takes the route id",
			path:       path,
			body:       fmt.Sprintf(`{"group_id":%d,"first_name":"Ivan","last_name":"Shevchenko","version":1}`, group.GroupID),
			wantStatus: http.StatusOK,
		},
		{
			name:       "stale version is a conflict",
			path:       path,
			body:       fmt.Sprintf(`{"group_id":%d,"first_name":"Ivan","last_name":"Franko","version":1}`, group.GroupID),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "mismatched ids are not found",
			path:       path,
			body:       fmt.Sprintf(`{"student_id":%d,"group_id":%d,"first_name":"Ivan","last_name":"Franko","version":2}`, student.StudentID+1, group.GroupID),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown student is not found",
			path:       "/api/v1/students/404",
			body:       fmt.Sprintf(`{"group_id":%d,"first_name":"Ivan","last_name":"Franko","version":1}`, group.GroupID),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid name is unprocessable",
			path:       path,
			body:       fmt.Sprintf(`{"group_id":%d,"first_name":"ivan","last_name":"Franko","version":2}`, group.GroupID),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "missing version is unprocessable",
			path:       path,
			body:       fmt.Sprintf(`{"group_id":%d,"first_name":"Ivan","last_name":"Franko"}`, group.GroupID),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "malformed body is a bad request",
			path:       path,
			body:       `{"group_id":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := do(t, srv, http.MethodPut, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, status)
		})
	}

	status, raw := do(t, srv, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, status)
	stored := decodeAs[entity.Student](t, raw)
	assert.Equal(t, "Shevchenko", stored.LastName)
	assert.Equal(t, int64(2), stored.Version)
	require.NotNil(t, stored.Group)
	assert.Equal(t, "SR-01", stored.Group.Name)
}

func TestRouter_Reads(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"empty course list", "/api/v1/courses", http.StatusOK},
		{"empty group list", "/api/v1/groups", http.StatusOK},
		{"empty student list", "/api/v1/students", http.StatusOK},
		{"unknown course", "/api/v1/courses/404", http.StatusNotFound},
		{"non numeric id", "/api/v1/groups/abc", http.StatusNotFound},
		{"students of unknown group", "/api/v1/groups/404/students", http.StatusOK},
		{"health", "/health", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := do(t, srv, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestRouter_CreateValidation(t *testing.T) {
	srv := newServer(t)

	status, raw := do(t, srv, http.MethodPost, "/api/v1/courses", `{"name":"C1","description":"Desc 1"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	resp := decodeAs[struct {
		Error      string             `json:"error"`
		Violations []entity.Violation `json:"violations"`
	}](t, raw)
	assert.Equal(t, "validation failed", resp.Error)
	require.Len(t, resp.Violations, 1)
	assert.Equal(t, "Name", resp.Violations[0].Field)
	assert.Equal(t, entity.RuleLength, resp.Violations[0].Rule)
}

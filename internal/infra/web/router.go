package web

import (
	"net/http"

	"github.com/DioGolang/GoUniversity/internal/application/usecase/academic"
	"github.com/DioGolang/GoUniversity/internal/infra/web/handler"
	webmw "github.com/DioGolang/GoUniversity/internal/infra/web/middleware"
	"github.com/DioGolang/GoUniversity/pkg/logger"
	"github.com/DioGolang/GoUniversity/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

type RouterConfig struct {
	ServiceName string
	UseCase     academic.UseCase
	Logger      logger.Logger
	Metrics     metrics.Metrics
	Health      http.Handler

	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(otelchi.Middleware(cfg.ServiceName, otelchi.WithChiRoutes(r)))
	r.Use(webmw.RequestLogger(cfg.Logger))
	r.Use(webmw.MetricsWrapper(cfg.Metrics, "/health", "/metrics"))

	if cfg.Health != nil {
		r.Handle("/health", cfg.Health)
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	courses := handler.NewCourseHandler(cfg.UseCase)
	groups := handler.NewGroupHandler(cfg.UseCase)
	students := handler.NewStudentHandler(cfg.UseCase)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/courses", func(r chi.Router) {
			r.Get("/", courses.List)
			r.Post("/", courses.Create)
			r.Get("/{id}", courses.Get)
			r.Put("/{id}", courses.Update)
			r.Delete("/{id}", courses.Delete)
			r.Get("/{id}/groups", courses.Groups)
		})
		r.Route("/groups", func(r chi.Router) {
			r.Get("/", groups.List)
			r.Post("/", groups.Create)
			r.Get("/{id}", groups.Get)
			r.Put("/{id}", groups.Update)
			r.Delete("/{id}", groups.Delete)
			r.Get("/{id}/students", groups.Students)
		})
		r.Route("/students", func(r chi.Router) {
			r.Get("/", students.List)
			r.Post("/", students.Create)
			r.Get("/{id}", students.Get)
			r.Put("/{id}", students.Update)
			r.Delete("/{id}", students.Delete)
		})
	})

	return r
}

package academic

import (
	"context"
	"errors"
	"time"

	"github.com/DioGolang/GoUniversity/internal/domain/entity"
	"github.com/DioGolang/GoUniversity/pkg/metrics"
)

// MetricsDecorator records the duration and outcome of every write. Reads pass through.
type MetricsDecorator struct {
	Next    UseCase
	Metrics metrics.Metrics
}

func NewMetricsDecorator(next UseCase, m metrics.Metrics) *MetricsDecorator {
	return &MetricsDecorator{Next: next, Metrics: m}
}

func (d *MetricsDecorator) observe(useCase, kind, op string, start time.Time, res WriteResult) WriteResult {
	d.Metrics.RecordUseCaseExecution(useCase, res.OK(), time.Since(start))
	d.Metrics.RecordWrite(kind, op, res.State.String())

	var verr *entity.ValidationError
	if res.State == Rejected && errors.As(res.Err, &verr) {
		for _, rule := range []string{entity.RuleNotEmptyCourse, entity.RuleNotEmptyGroup} {
			if verr.HasRule(rule) {
				d.Metrics.RecordGuardRejection(rule)
			}
		}
	}
	return res
}

func (d *MetricsDecorator) ListCourses(ctx context.Context) ([]entity.Course, error) {
	return d.Next.ListCourses(ctx)
}

func (d *MetricsDecorator) GetCourse(ctx context.Context, id int64) (*entity.Course, error) {
	return d.Next.GetCourse(ctx, id)
}

func (d *MetricsDecorator) CreateCourse(ctx context.Context, course *entity.Course) WriteResult {
	start := time.Now()
	return d.observe("CreateCourse", "course", "create", start, d.Next.CreateCourse(ctx, course))
}

func (d *MetricsDecorator) UpdateCourse(ctx context.Context, course *entity.Course) WriteResult {
	start := time.Now()
	return d.observe("UpdateCourse", "course", "update", start, d.Next.UpdateCourse(ctx, course))
}

func (d *MetricsDecorator) DeleteCourse(ctx context.Context, id int64) WriteResult {
	start := time.Now()
	return d.observe("DeleteCourse", "course", "delete", start, d.Next.DeleteCourse(ctx, id))
}

func (d *MetricsDecorator) ListGroups(ctx context.Context) ([]entity.Group, error) {
	return d.Next.ListGroups(ctx)
}

func (d *MetricsDecorator) ListCourseGroups(ctx context.Context, courseID int64) ([]entity.Group, error) {
	return d.Next.ListCourseGroups(ctx, courseID)
}

func (d *MetricsDecorator) GetGroup(ctx context.Context, id int64) (*entity.Group, error) {
	return d.Next.GetGroup(ctx, id)
}

func (d *MetricsDecorator) CreateGroup(ctx context.Context, group *entity.Group) WriteResult {
	start := time.Now()
	return d.observe("CreateGroup", "group", "create", start, d.Next.CreateGroup(ctx, group))
}

func (d *MetricsDecorator) UpdateGroup(ctx context.Context, group *entity.Group) WriteResult {
	start := time.Now()
	return d.observe("UpdateGroup", "group", "update", start, d.Next.UpdateGroup(ctx, group))
}

func (d *MetricsDecorator) DeleteGroup(ctx context.Context, id int64) WriteResult {
	start := time.Now()
	return d.observe("DeleteGroup", "group", "delete", start, d.Next.DeleteGroup(ctx, id))
}

func (d *MetricsDecorator) ListStudents(ctx context.Context) ([]entity.Student, error) {
	return d.Next.ListStudents(ctx)
}

func (d *MetricsDecorator) ListGroupStudents(ctx context.Context, groupID int64) ([]entity.Student, error) {
	return d.Next.ListGroupStudents(ctx, groupID)
}

func (d *MetricsDecorator) GetStudent(ctx context.Context, id int64) (*entity.Student, error) {
	return d.Next.GetStudent(ctx, id)
}

func (d *MetricsDecorator) CreateStudent(ctx context.Context, student *entity.Student) WriteResult {
	start := time.Now()
	return d.observe("CreateStudent", "student", "create", start, d.Next.CreateStudent(ctx, student))
}

func (d *MetricsDecorator) UpdateStudent(ctx context.Context, student *entity.Student) WriteResult {
	start := time.Now()
	return d.observe("UpdateStudent", "student", "update", start, d.Next.UpdateStudent(ctx, student))
}

func (d *MetricsDecorator) DeleteStudent(ctx context.Context, id int64) WriteResult {
	start := time.Now()
	return d.observe("DeleteStudent", "student", "delete", start, d.Next.DeleteStudent(ctx, id))
}

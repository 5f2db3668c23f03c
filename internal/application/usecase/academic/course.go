package academic

import (
	"context"

	"github.com/DioGolang/GoUniversity/internal/application/port/outbound"
	"github.com/DioGolang/GoUniversity/internal/domain/entity"
)

// minGroupsToBlockCourseDeletion is the group count at which a course can no longer be deleted.
const minGroupsToBlockCourseDeletion = 1

func (s *Service) ListCourses(ctx context.Context) ([]entity.Course, error) {
	return s.uow.New().Courses().Get(ctx, outbound.Query[entity.Course]{
		OrderBy: []outbound.Order{outbound.Asc("name")},
	})
}

func (s *Service) GetCourse(ctx context.Context, id int64) (*entity.Course, error) {
	return s.uow.New().Courses().GetByID(ctx, id, "Groups")
}

func (s *Service) CreateCourse(ctx context.Context, course *entity.Course) WriteResult {
	return create(ctx, s, "course", pickCourses, course, course.Validate())
}

func (s *Service) UpdateCourse(ctx context.Context, course *entity.Course) WriteResult {
	return update(ctx, s, "course", pickCourses, course, course.CourseID, course.Version, course.Validate())
}

func (s *Service) DeleteCourse(ctx context.Context, id int64) WriteResult {
	return remove(ctx, s, "course", pickCourses, id, "Groups", func(c *entity.Course) error {
		if len(c.Groups) >= minGroupsToBlockCourseDeletion {
			return entity.NewRuleViolation("Groups", entity.RuleNotEmptyCourse,
				"Course contains groups and can't be deleted.")
		}
		return nil
	})
}

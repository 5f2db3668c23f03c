package academic

import (
	"context"

	"github.com/DioGolang/GoUniversity/internal/application/port/outbound"
	"github.com/DioGolang/GoUniversity/internal/domain/entity"
)

const minStudentsToBlockGroupDeletion = 1

func (s *Service) ListGroups(ctx context.Context) ([]entity.Group, error) {
	return s.uow.New().Groups().Get(ctx, outbound.Query[entity.Group]{
		OrderBy: []outbound.Order{outbound.Asc("name")},
		Include: "Course",
	})
}

func (s *Service) ListCourseGroups(ctx context.Context, courseID int64) ([]entity.Group, error) {
	return s.uow.New().Groups().Get(ctx, outbound.Query[entity.Group]{
		Where:   []outbound.Condition{outbound.Eq("course_id", courseID)},
		OrderBy: []outbound.Order{outbound.Asc("name")},
		Include: "Course",
	})
}

func (s *Service) GetGroup(ctx context.Context, id int64) (*entity.Group, error) {
	return s.uow.New().Groups().GetByID(ctx, id, "Course", "Students")
}

func (s *Service) CreateGroup(ctx context.Context, group *entity.Group) WriteResult {
	return create(ctx, s, "group", pickGroups, group, group.Validate())
}

func (s *Service) UpdateGroup(ctx context.Context, group *entity.Group) WriteResult {
	return update(ctx, s, "group", pickGroups, group, group.GroupID, group.Version, group.Validate())
}

func (s *Service) DeleteGroup(ctx context.Context, id int64) WriteResult {
	return remove(ctx, s, "group", pickGroups, id, "Students", func(g *entity.Group) error {
		if len(g.Students) >= minStudentsToBlockGroupDeletion {
			return entity.NewRuleViolation("Students", entity.RuleNotEmptyGroup,
				"Group contains students and can't be deleted.")
		}
		return nil
	})
}

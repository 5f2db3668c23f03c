package academic

import (
	"context"

	"github.com/DioGolang/GoUniversity/internal/application/port/outbound"
	"github.com/DioGolang/GoUniversity/internal/domain/entity"
)

func (s *Service) ListStudents(ctx context.Context) ([]entity.Student, error) {
	return s.uow.New().Students().Get(ctx, outbound.Query[entity.Student]{
		OrderBy: []outbound.Order{outbound.Asc("last_name")},
		Include: "Group",
	})
}

func (s *Service) ListGroupStudents(ctx context.Context, groupID int64) ([]entity.Student, error) {
	return s.uow.New().Students().Get(ctx, outbound.Query[entity.Student]{
		Where:   []outbound.Condition{outbound.Eq("group_id", groupID)},
		OrderBy: []outbound.Order{outbound.Asc("last_name")},
		Include: "Group",
	})
}

func (s *Service) GetStudent(ctx context.Context, id int64) (*entity.Student, error) {
	return s.uow.New().Students().GetByID(ctx, id, "Group")
}

func (s *Service) CreateStudent(ctx context.Context, student *entity.Student) WriteResult {
	return create(ctx, s, "student", pickStudents, student, student.Validate())
}

func (s *Service) UpdateStudent(ctx context.Context, student *entity.Student) WriteResult {
	return update(ctx, s, "student", pickStudents, student, student.StudentID, student.Version, student.Validate())
}

func (s *Service) DeleteStudent(ctx context.Context, id int64) WriteResult {
	return remove[entity.Student](ctx, s, "student", pickStudents, id, "", nil)
}

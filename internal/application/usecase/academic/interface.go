package academic

import (
	"context"

	"github.com/DioGolang/GoUniversity/internal/domain/entity"
)

type CourseUseCase interface {
	ListCourses(ctx context.Context) ([]entity.Course, error)
	GetCourse(ctx context.Context, id int64) (*entity.Course, error)
	CreateCourse(ctx context.Context, course *entity.Course) WriteResult
	UpdateCourse(ctx context.Context, course *entity.Course) WriteResult
	DeleteCourse(ctx context.Context, id int64) WriteResult
}

type GroupUseCase interface {
	ListGroups(ctx context.Context) ([]entity.Group, error)
	ListCourseGroups(ctx context.Context, courseID int64) ([]entity.Group, error)
	GetGroup(ctx context.Context, id int64) (*entity.Group, error)
	CreateGroup(ctx context.Context, group *entity.Group) WriteResult
	UpdateGroup(ctx context.Context, group *entity.Group) WriteResult
	DeleteGroup(ctx context.Context, id int64) WriteResult
}

type StudentUseCase interface {
	ListStudents(ctx context.Context) ([]entity.Student, error)
	ListGroupStudents(ctx context.Context, groupID int64) ([]entity.Student, error)
	GetStudent(ctx context.Context, id int64) (*entity.Student, error)
	CreateStudent(ctx context.Context, student *entity.Student) WriteResult
	UpdateStudent(ctx context.Context, student *entity.Student) WriteResult
	DeleteStudent(ctx context.Context, id int64) WriteResult
}

type UseCase interface {
	CourseUseCase
	GroupUseCase
	StudentUseCase
}

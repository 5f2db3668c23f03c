package database

import (
	"context"
	"strings"

	"github.com/DioGolang/GoUniversity/internal/domain/entity"
	"github.com/jmoiron/sqlx"
)

const versionColumn = "version"

// relation eager-loads one named association into rows, then the remaining path.
type relation[T any] func(ctx context.Context, db *sqlx.DB, rows []T, rest string) error

// dependent is a child table referencing the mapped table through fk.
type dependent struct {
	table string
	fk    string
}

// mapping binds an entity type to its table. columns lists the writable columns in
// the order values returns them; the key and version columns are handled separately.
type mapping[T any] struct {
	name      string
	table     string
	key       string
	columns   []string
	values    func(*T) []any
	keyOf     func(*T) int64
	setKey    func(*T, int64)
	version   func(*T) *int64
	relations map[string]relation[T]

	// dependents are the has-many relations a guarded delete can check, by relation name.
	dependents map[string]dependent
}

func (m *mapping[T]) selectList() string {
	cols := make([]string, 0, len(m.columns)+2)
	cols = append(cols, m.key)
	cols = append(cols, m.columns...)
	cols = append(cols, versionColumn)
	return strings.Join(cols, ", ")
}

func (m *mapping[T]) hasColumn(column string) bool {
	if column == m.key || column == versionColumn {
		return true
	}
	for _, c := range m.columns {
		if c == column {
			return true
		}
	}
	return false
}

var courses = &mapping[entity.Course]{
	name:    "course",
	table:   "courses",
	key:     "course_id",
	columns: []string{"name", "description"},
	values:  func(c *entity.Course) []any { return []any{c.Name, c.Description} },
	keyOf:   func(c *entity.Course) int64 { return c.CourseID },
	setKey:  func(c *entity.Course, id int64) { c.CourseID = id },
	version: func(c *entity.Course) *int64 { return &c.Version },
}

var groups = &mapping[entity.Group]{
	name:    "group",
	table:   "study_groups",
	key:     "group_id",
	columns: []string{"course_id", "name"},
	values:  func(g *entity.Group) []any { return []any{g.CourseID, g.Name} },
	keyOf:   func(g *entity.Group) int64 { return g.GroupID },
	setKey:  func(g *entity.Group, id int64) { g.GroupID = id },
	version: func(g *entity.Group) *int64 { return &g.Version },
}

var students = &mapping[entity.Student]{
	name:    "student",
	table:   "students",
	key:     "student_id",
	columns: []string{"group_id", "first_name", "last_name"},
	values:  func(s *entity.Student) []any { return []any{s.GroupID, s.FirstName, s.LastName} },
	keyOf:   func(s *entity.Student) int64 { return s.StudentID },
	setKey:  func(s *entity.Student, id int64) { s.StudentID = id },
	version: func(s *entity.Student) *int64 { return &s.Version },
}

// Relations reference the other mappings, so they are wired after package vars exist.
func init() {
	courses.dependents = map[string]dependent{"Groups": {table: groups.table, fk: "course_id"}}
	groups.dependents = map[string]dependent{"Students": {table: students.table, fk: "group_id"}}

	courses.relations = map[string]relation[entity.Course]{
		"Groups": hasMany(courses, groups, "course_id",
			func(g *entity.Group) int64 { return g.CourseID },
			func(c *entity.Course, gs []entity.Group) { c.Groups = gs }),
	}
	groups.relations = map[string]relation[entity.Group]{
		"Course": belongsTo(courses,
			func(g *entity.Group) int64 { return g.CourseID },
			func(g *entity.Group, c *entity.Course) { g.Course = c }),
		"Students": hasMany(groups, students, "group_id",
			func(s *entity.Student) int64 { return s.GroupID },
			func(g *entity.Group, ss []entity.Student) { g.Students = ss }),
	}
	students.relations = map[string]relation[entity.Student]{
		"Group": belongsTo(groups,
			func(s *entity.Student) int64 { return s.GroupID },
			func(s *entity.Student, g *entity.Group) { s.Group = g }),
	}
}

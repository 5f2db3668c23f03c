package entity

// Group belongs to exactly one course and owns zero or more students.
type Group struct {
	GroupID  int64  `json:"group_id" db:"group_id"`
	CourseID int64  `json:"course_id" db:"course_id"`
	Name     string `json:"name" db:"name"`
	Version  int64  `json:"version" db:"version"`

	Course   *Course   `json:"course,omitempty" db:"-"`
	Students []Student `json:"students,omitempty" db:"-"`
}

func NewGroup(courseID int64, name string) (*Group, error) {
	g := &Group{CourseID: courseID, Name: name}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Group) Validate() error {
	var vs violations
	checkReference(&vs, "CourseID", g.CourseID)
	checkLength(&vs, "Name", g.Name, 3, 10, ErrNameIsRequired)
	return vs.err()
}

package entity

// Course owns zero or more groups.
type Course struct {
	CourseID    int64  `json:"course_id" db:"course_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Version     int64  `json:"version" db:"version"`

	Groups []Group `json:"groups,omitempty" db:"-"`
}

func NewCourse(name, description string) (*Course, error) {
	c := &Course{Name: name, Description: description}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Course) Validate() error {
	var vs violations
	checkLength(&vs, "Name", c.Name, 3, 50, ErrNameIsRequired)
	checkLength(&vs, "Description", c.Description, 3, 500, ErrDescriptionIsRequired)
	return vs.err()
}

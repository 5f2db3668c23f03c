package entity

type Student struct {
	StudentID int64  `json:"student_id" db:"student_id"`
	GroupID   int64  `json:"group_id" db:"group_id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Version   int64  `json:"version" db:"version"`

	Group *Group `json:"group,omitempty" db:"-"`
}

func NewStudent(groupID int64, firstName, lastName string) (*Student, error) {
	s := &Student{GroupID: groupID, FirstName: firstName, LastName: lastName}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Student) Validate() error {
	var vs violations
	checkReference(&vs, "GroupID", s.GroupID)
	checkPersonName(&vs, "FirstName", s.FirstName)
	checkPersonName(&vs, "LastName", s.LastName)
	return vs.err()
}

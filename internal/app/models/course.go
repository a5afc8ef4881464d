package models

// Course defines the course model based on the 'courses' table
type Course struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Code         string  `json:"code" db:"code"`
	Classroom    *string `json:"classroom,omitempty" db:"classroom"`
	Description  *string `json:"description,omitempty" db:"description"`
	DepartmentID int64   `json:"departmentId" db:"department_id"`

	Department *Department `json:"department,omitempty"` // Relation, no db tag
	Lecturers  []Lecturer  `json:"lecturers,omitempty"`  // Assigned lecturers (many-to-many)
}

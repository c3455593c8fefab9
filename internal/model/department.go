package model

// Department belongs to a school and owns programs, lecturers and users.
type Department struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Acronym    string `json:"acronym,omitempty"`
	SchoolID   int    `json:"school_id"`
	SchoolName string `json:"school,omitempty"`
}

// administrativeDepartments are service units that never allocate courses.
// They are excluded from allocation listings and the status overview.
var administrativeDepartments = map[string]bool{
	"Registry":               true,
	"Academic Planning":      true,
	"General Study Division": true,
}

// IsAdministrative reports whether the department is a non-academic service
// unit excluded from the allocation workflow.
func (d Department) IsAdministrative() bool {
	return administrativeDepartments[d.Name]
}

// CreateDepartmentRequest is the payload for creating or updating a department.
type CreateDepartmentRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	SchoolID int    `json:"school_id" binding:"required"`
	Acronym  string `json:"acronym" binding:"required,min=2,max=10"`
}

// BatchCreateDepartmentsRequest is the payload for bulk department upload.
type BatchCreateDepartmentsRequest struct {
	Departments []CreateDepartmentRequest `json:"departments" binding:"required,min=1,dive"`
}

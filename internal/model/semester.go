package model

// Canonical semester names. The summer semester has no catalog slots of its
// own: its allocatable pool is the union of first- and second-semester slots.
const (
	SemesterFirst  = "First Semester"
	SemesterSecond = "Second Semester"
	SemesterSummer = "Summer Semester"
)

// Semester is a term within an academic session. The is_active flag gates
// which semesters are currently open for allocation, independent of the
// session's own active flag.
type Semester struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// CreateSemesterRequest is the payload for creating a semester.
type CreateSemesterRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=50"`
	IsActive bool   `json:"is_active"`
}

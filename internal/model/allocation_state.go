package model

import "time"

// WorkflowStatus is the derived submit/vet state of a department's
// allocation for one (session, semester).
type WorkflowStatus string

const (
	WorkflowNotStarted WorkflowStatus = "NOT_STARTED"
	WorkflowInProgress WorkflowStatus = "IN_PROGRESS"
	WorkflowSubmitted  WorkflowStatus = "SUBMITTED"
	WorkflowVetted     WorkflowStatus = "VETTED"
)

// DepartmentAllocationState is the persisted workflow record. A row exists
// only once a department has submitted; unblocking removes it. One row per
// (department, session, semester).
type DepartmentAllocationState struct {
	ID           int        `json:"id"`
	DepartmentID int        `json:"department_id"`
	SessionID    int        `json:"session_id"`
	SemesterID   int        `json:"semester_id"`
	Submitted    bool       `json:"is_submitted"`
	Vetted       bool       `json:"is_vetted"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	VettedAt     *time.Time `json:"vetted_at,omitempty"`
	SubmittedBy  *int       `json:"submitted_by,omitempty"`
	VettedBy     *int       `json:"vetted_by,omitempty"`
}

// Status derives the workflow status of a possibly absent state row given
// whether the department has any allocations yet.
func (s *DepartmentAllocationState) Status(hasAllocations bool) WorkflowStatus {
	switch {
	case s != nil && s.Vetted:
		return WorkflowVetted
	case s != nil && s.Submitted:
		return WorkflowSubmitted
	case hasAllocations:
		return WorkflowInProgress
	default:
		return WorkflowNotStarted
	}
}

// WorkflowRequest addresses a department's workflow record for one semester
// of the active session.
type WorkflowRequest struct {
	DepartmentID int `json:"department_id" binding:"required"`
	SemesterID   int `json:"semester_id" binding:"required"`
}

// SemesterWorkflowView is one semester's slice of an overview row: workflow
// state plus the semester's own allocation progress.
type SemesterWorkflowView struct {
	SemesterID       int            `json:"semester_id"`
	SemesterName     string         `json:"semester_name"`
	Status           WorkflowStatus `json:"status"`
	AllocationStatus string         `json:"allocation_status"`
	TotalSlots       int            `json:"total_courses"`
	AllocatedSlots   int            `json:"allocated_courses"`
	AllocationRate   float64        `json:"allocation_rate"`
	Submitted        bool           `json:"is_submitted"`
	Vetted           bool           `json:"is_vetted"`
}

// OverviewRow is one department's line in the allocation status overview.
type OverviewRow struct {
	DepartmentID     int        `json:"department_id"`
	DepartmentName   string     `json:"department_name"`
	Acronym          string     `json:"acronym,omitempty"`
	SchoolName       string     `json:"school_name"`
	HODName          string     `json:"hod_name,omitempty"`
	Status           string     `json:"status"`
	TotalSlots       int        `json:"total_courses"`
	AllocatedSlots   int        `json:"allocated_courses"`
	AllocationRate   float64    `json:"allocation_rate"`
	Submitted        bool       `json:"is_submitted"`
	Vetted           bool       `json:"is_vetted"`
	LastAllocationAt *time.Time `json:"last_allocation_at,omitempty"`

	Semesters []SemesterWorkflowView `json:"semesters"`
}

// SessionStats are aggregate figures for the active session dashboard.
type SessionStats struct {
	SessionID            int     `json:"session_id"`
	SessionName          string  `json:"session_name"`
	TotalDepartments     int     `json:"total_departments"`
	DepartmentsAllocated int     `json:"departments_allocated"`
	DepartmentsStarted   int     `json:"departments_started"`
	DepartmentsSubmitted int     `json:"departments_submitted"`
	DepartmentsVetted    int     `json:"departments_vetted"`
	TotalAllocations     int     `json:"total_allocations"`
	ComplianceScore      float64 `json:"compliance_score"`
}

package model

import (
	"strings"
	"time"
)

// CourseAllocation assigns a lecturer to a course slot within one academic
// session. SemesterID is the semester the allocation was requested for; a
// summer allocation points at a first or second semester slot, so it may
// differ from the slot's own semester. SourceBulletinID freezes the slot's
// bulletin at allocation time. A slot may carry several allocations
// distinguished by group name; (program_course_id, session_id, group_name)
// is unique.
type CourseAllocation struct {
	ID               int        `json:"id"`
	ProgramCourseID  int        `json:"program_course_id"`
	SessionID        int        `json:"session_id"`
	SemesterID       int        `json:"semester_id"`
	LecturerID       int        `json:"lecturer_id"`
	GroupName        *string    `json:"group_name,omitempty"`
	ClassSize        *int       `json:"class_size,omitempty"`
	ClassOption      *string    `json:"class_option,omitempty"`
	IsLead           bool       `json:"is_lead"`
	IsAllocated      bool       `json:"is_allocated"`
	IsSpecial        bool       `json:"is_special_allocation"`
	SourceBulletinID *int       `json:"source_bulletin_id,omitempty"`
	PushedToUMIS     bool       `json:"pushed_to_umis"`
	PushedAt         *time.Time `json:"pushed_at,omitempty"`
	PushedBy         *int       `json:"pushed_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Joined display fields.
	LecturerName string `json:"lecturer_name,omitempty"`
	CourseCode   string `json:"course_code,omitempty"`
	CourseTitle  string `json:"course_title,omitempty"`
}

// DeriveIsLead reports whether a group name marks the lead allocation of a
// slot. The comparison is case-insensitive; a nil group is never lead.
func DeriveIsLead(groupName *string) bool {
	if groupName == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(*groupName), "group a")
}

// AllocationItem is one entry of a batch allocation request. Program and
// semester may be given by id or by name; the service resolves names to ids
// before anything is written.
type AllocationItem struct {
	ProgramID    int     `json:"program_id"`
	ProgramName  string  `json:"program_name"`
	CourseID     int     `json:"course_id" binding:"required"`
	LevelID      int     `json:"level_id" binding:"required"`
	SemesterID   int     `json:"semester_id"`
	SemesterName string  `json:"semester_name"`
	LecturerID   int     `json:"lecturer_id"`
	LecturerName string  `json:"lecturer_name"`
	GroupName    *string `json:"group_name"`
	ClassSize    *int    `json:"class_size"`
	ClassOption  *string `json:"class_option"`
	IsAllocated  bool    `json:"is_allocated"`
	IsSpecial    bool    `json:"is_special_allocation"`
}

// BatchAllocationRequest allocates several slots in one atomic operation.
type BatchAllocationRequest struct {
	Allocations []AllocationItem `json:"allocations" binding:"required,min=1,dive"`
}

// ReplaceAllocationsRequest swaps out every allocation of one slot for the
// given set in a single transaction.
type ReplaceAllocationsRequest struct {
	ProgramID   int              `json:"program_id" binding:"required"`
	CourseID    int              `json:"course_id" binding:"required"`
	LevelID     int              `json:"level_id" binding:"required"`
	SemesterID  int              `json:"semester_id" binding:"required"`
	Allocations []AllocationItem `json:"allocations" binding:"required,dive"`
}

// BatchAllocationError reports the first request item that failed validation
// during the pre-commit phase of a batch allocation.
type BatchAllocationError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

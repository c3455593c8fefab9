package model

// The view types below shape the nested payload a department sees when it
// opens its allocation workspace: semesters > programs > levels > courses,
// with specialization fan-out applied at the course layer.

// CourseSlotView is one allocatable course row in the department workspace.
type CourseSlotView struct {
	ProgramCourseID int              `json:"program_course_id"`
	CourseID        int              `json:"course_id"`
	Code            string           `json:"code"`
	Title           string           `json:"title"`
	Unit            int              `json:"unit"`
	Specialization  string           `json:"specialization"`
	BulletinID      int              `json:"bulletin_id"`
	IsLegacy        bool             `json:"is_legacy"`
	IsAllocated     bool             `json:"is_allocated"`
	Allocations     []AllocationView `json:"allocations"`
}

// AllocationView is a lecturer assignment displayed inside a course row.
type AllocationView struct {
	ID           int     `json:"id"`
	LecturerID   int     `json:"lecturer_id"`
	LecturerName string  `json:"lecturer_name"`
	GroupName    *string `json:"group_name,omitempty"`
	ClassSize    *int    `json:"class_size,omitempty"`
	ClassOption  *string `json:"class_option,omitempty"`
	IsLead       bool    `json:"is_lead"`
}

// LevelAllocationView groups course rows under a year of study.
type LevelAllocationView struct {
	LevelID   int              `json:"level_id"`
	LevelName string           `json:"level_name"`
	Courses   []CourseSlotView `json:"courses"`
}

// ProgramAllocationView groups levels under a degree program.
type ProgramAllocationView struct {
	ProgramID   int                   `json:"program_id"`
	ProgramName string                `json:"program_name"`
	Levels      []LevelAllocationView `json:"levels"`
}

// SemesterAllocationView is a department's workspace for one semester of the
// active session.
type SemesterAllocationView struct {
	SessionID      int                     `json:"session_id"`
	SessionName    string                  `json:"session_name"`
	SemesterID     int                     `json:"semester_id"`
	SemesterName   string                  `json:"semester_name"`
	DepartmentID   int                     `json:"department_id"`
	DepartmentName string                  `json:"department_name"`
	Submitted      bool                    `json:"is_submitted"`
	Vetted         bool                    `json:"is_vetted"`
	Programs       []ProgramAllocationView `json:"programs"`
}

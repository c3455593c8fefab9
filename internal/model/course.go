package model

import "time"

// CourseType classifies courses (core, elective, general studies, ...).
type CourseType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Course is a bulletin-independent catalog entry identified by its code.
type Course struct {
	ID           int    `json:"id"`
	Code         string `json:"code"`
	Title        string `json:"title"`
	Units        int    `json:"unit"`
	CourseTypeID *int   `json:"course_type_id,omitempty"`
}

// ProgramCourse is a course slot: the curriculum join of
// (program, course, level, semester, bulletin). It is the unit that gets
// allocated. Within one bulletin the tuple must not be duplicated.
type ProgramCourse struct {
	ID         int       `json:"id"`
	ProgramID  int       `json:"program_id"`
	CourseID   int       `json:"course_id"`
	LevelID    int       `json:"level_id"`
	SemesterID int       `json:"semester_id"`
	BulletinID int       `json:"bulletin_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// DepartmentID is the owning program's department, populated by joined
	// lookups so services can check slot ownership without a second query.
	DepartmentID int `json:"-"`
}

// Specialization is an optional track within a program; slots may be tagged
// with any number of specializations.
type Specialization struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SlotDetail is a fully joined course slot row used by catalog listings and
// the scope resolver.
type SlotDetail struct {
	ID              int      `json:"program_course_id"`
	ProgramID       int      `json:"program_id"`
	ProgramName     string   `json:"program_name"`
	CourseID        int      `json:"course_id"`
	CourseCode      string   `json:"code"`
	CourseTitle     string   `json:"title"`
	Units           int      `json:"unit"`
	LevelID         int      `json:"level_id"`
	LevelName       string   `json:"level_name"`
	SemesterID      int      `json:"semester_id"`
	SemesterName    string   `json:"semester_name"`
	BulletinID      int      `json:"bulletin_id"`
	BulletinName    string   `json:"bulletin_name"`
	DepartmentID    int      `json:"department_id"`
	DepartmentName  string   `json:"department_name"`
	SchoolID        int      `json:"school_id"`
	SchoolName      string   `json:"school_name"`
	CourseTypeID    *int     `json:"course_type_id,omitempty"`
	CourseTypeName  *string  `json:"course_type_name,omitempty"`
	Specializations []string `json:"specializations"`
}

// CreateCourseRequest creates a course together with its curriculum slot.
type CreateCourseRequest struct {
	Code             string `json:"code" binding:"required,min=3,max=20"`
	Title            string `json:"title" binding:"required,min=3,max=255"`
	Unit             int    `json:"unit" binding:"required,min=1,max=12"`
	ProgramID        int    `json:"program_id" binding:"required"`
	LevelID          int    `json:"level_id" binding:"required"`
	SemesterID       int    `json:"semester_id" binding:"required"`
	BulletinID       int    `json:"bulletin_id" binding:"required"`
	CourseTypeID     *int   `json:"course_type_id"`
	SpecializationID *int   `json:"specialization_id"`
}

// BatchCreateCoursesRequest is the payload for bulk course upload.
type BatchCreateCoursesRequest struct {
	Courses []CreateCourseRequest `json:"courses" binding:"required,min=1,dive"`
}

// UpdateCourseSlotRequest updates a course slot and its underlying course.
type UpdateCourseSlotRequest struct {
	Code             string `json:"code" binding:"omitempty,min=3,max=20"`
	Title            string `json:"title" binding:"omitempty,min=3,max=255"`
	Unit             int    `json:"unit" binding:"omitempty,min=1,max=12"`
	ProgramID        int    `json:"program_id"`
	LevelID          int    `json:"level_id"`
	SemesterID       int    `json:"semester_id"`
	BulletinID       int    `json:"bulletin_id"`
	CourseTypeID     *int   `json:"course_type_id"`
	SpecializationID *int   `json:"specialization_id"`
}

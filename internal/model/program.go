package model

// Program is a degree program owned by a department.
type Program struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DepartmentID int    `json:"department_id"`
}

// CreateProgramRequest is the payload for creating a program.
type CreateProgramRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=150"`
	DepartmentID int    `json:"department_id" binding:"required"`
}

// Level is a year-of-study label, e.g. "100", "200".
type Level struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateLevelRequest is the payload for creating a level.
type CreateLevelRequest struct {
	Name string `json:"name" binding:"required,min=1,max=20"`
}

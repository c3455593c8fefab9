package model

// UMISPushRequest pushes every unpushed allocation of one course slot to the
// university management information system, authenticating with the head of
// department's UMIS credentials.
type UMISPushRequest struct {
	UMISID     string `json:"umisid" binding:"required"`
	Password   string `json:"password" binding:"required"`
	ProgramID  int    `json:"program_id" binding:"required"`
	CourseID   int    `json:"course_id" binding:"required"`
	LevelID    int    `json:"level_id" binding:"required"`
	SemesterID int    `json:"semester_id" binding:"required"`
}

// UMISPushRowResult is the outcome of pushing one allocation row.
type UMISPushRowResult struct {
	AllocationID int     `json:"allocation_id"`
	LecturerName string  `json:"lecturer_name"`
	GroupName    *string `json:"group_name,omitempty"`
	Pushed       bool    `json:"pushed"`
	Reason       string  `json:"reason,omitempty"`
}

// UMISPushSummary reports a push run. A run with failures still commits the
// rows that went through; failed rows stay unpushed for a retry.
type UMISPushSummary struct {
	Total   int                 `json:"total"`
	Pushed  int                 `json:"pushed"`
	Failed  int                 `json:"failed"`
	Results []UMISPushRowResult `json:"results"`
}

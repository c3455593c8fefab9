package model

// School is the top of the catalog hierarchy; departments belong to schools.
type School struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateSchoolRequest is the payload for creating a school.
type CreateSchoolRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

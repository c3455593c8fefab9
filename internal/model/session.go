package model

// AcademicSession represents an academic year, e.g. "2024/2025".
// Exactly one session is active in steady state; initializing a new
// session deactivates the previous one.
type AcademicSession struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// InitSessionRequest is the payload for initializing a new academic session.
type InitSessionRequest struct {
	Name string `json:"name" binding:"required,min=4,max=50"`
}

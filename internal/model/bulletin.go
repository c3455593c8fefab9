package model

import "time"

// Bulletin is a versioned curriculum catalog with a validity window.
// At most one bulletin is active at a time; activating a new one
// deactivates all others in the same transaction.
type Bulletin struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	StartYear int       `json:"start_year"`
	EndYear   int       `json:"end_year"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateBulletinRequest is the payload for creating (and activating) a bulletin.
type CreateBulletinRequest struct {
	Name      string `json:"name" binding:"required,min=3,max=100"`
	StartYear int    `json:"start_year" binding:"required,min=1900"`
	EndYear   int    `json:"end_year" binding:"required,gtefield=StartYear"`
}

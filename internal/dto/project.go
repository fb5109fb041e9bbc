package dto

import "time"

// ProjectResponse represents a project as exposed via transport layers.
type ProjectResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultProjectColor is applied when a project is created without one.
const DefaultProjectColor = "#f2766b"

type Project struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	IsArchived  bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

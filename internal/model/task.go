package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Priorities is the fixed enumeration used by analytics breakdowns.
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

type Task struct {
	ID            uuid.UUID  `json:"id"`
	UserID        string     `json:"user_id"`
	ProjectID     *uuid.UUID `json:"project_id,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	EstimatedTime *int       `json:"estimated_time,omitempty"`
	ActualTime    *int       `json:"actual_time,omitempty"`
	Position      int        `json:"position"`
	Tags          []string   `json:"tags"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TaskFilter carries the optional list constraints. A nil field means
// "no constraint", not "match empty".
type TaskFilter struct {
	ProjectID  *uuid.UUID
	Status     *string
	Priority   *string
	Search     *string
	DateFilter *string
	Tag        *string
}

func ValidStatus(s string) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

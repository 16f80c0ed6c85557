package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/model"
	"github.com/taskhive/taskhive-api/internal/ordering"
	"github.com/taskhive/taskhive-api/internal/repo"
)

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// Create assigns the next position within the task's (user, project) scope.
// The read-then-write is not transactional; two concurrent creates can land
// on the same position, which reads resolve by creation time.
func (s *TaskService) Create(ctx context.Context, userID string, t model.Task) (model.Task, error) {
	t.UserID = userID
	applyTaskDefaults(&t)
	if err := validateTask(t); err != nil {
		return t, err
	}

	scope, err := s.repo.ListByScope(ctx, userID, t.ProjectID)
	if err != nil {
		return t, err
	}
	t.Position = ordering.NextPosition(scope)

	return s.repo.Create(ctx, t)
}

func (s *TaskService) Get(ctx context.Context, userID string, id uuid.UUID) (model.Task, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *TaskService) List(ctx context.Context, userID string, filter model.TaskFilter) ([]model.Task, error) {
	return s.repo.List(ctx, userID, filter)
}

func (s *TaskService) Update(ctx context.Context, userID string, t model.Task) (model.Task, error) {
	t.UserID = userID
	applyTaskDefaults(&t)
	if err := validateTask(t); err != nil {
		return t, err
	}
	return s.repo.Update(ctx, t)
}

func (s *TaskService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

// Reorder rewrites position = index for the submitted sequence, one row at a
// time. A failure part-way leaves earlier rows renumbered and later rows
// untouched; the caller is expected to re-fetch and reconcile.
func (s *TaskService) Reorder(ctx context.Context, userID string, ids []uuid.UUID) error {
	for _, a := range ordering.Sequence(ids) {
		if err := s.repo.UpdatePosition(ctx, userID, a.TaskID, a.Position); err != nil {
			return err
		}
	}
	return nil
}

func applyTaskDefaults(t *model.Task) {
	if t.Status == "" {
		t.Status = model.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
}

func validateTask(t model.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return validationf("title is required")
	}
	if !model.ValidStatus(t.Status) {
		return validationf("invalid status %q", t.Status)
	}
	if !model.ValidPriority(t.Priority) {
		return validationf("invalid priority %q", t.Priority)
	}
	if t.EstimatedTime != nil && *t.EstimatedTime < 0 {
		return validationf("estimated_time must be non-negative")
	}
	if t.ActualTime != nil && *t.ActualTime < 0 {
		return validationf("actual_time must be non-negative")
	}
	return nil
}

package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/model"
)

// TaskRepository scopes every operation to the owning user. An id that
// exists but belongs to someone else is reported as not found.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (model.Task, error)
	List(ctx context.Context, userID string, filter model.TaskFilter) ([]model.Task, error)
	ListByScope(ctx context.Context, userID string, projectID *uuid.UUID) ([]model.Task, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	UpdatePosition(ctx context.Context, userID string, id uuid.UUID, position int) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

type ProjectRepository interface {
	Create(ctx context.Context, p model.Project) (model.Project, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (model.Project, error)
	List(ctx context.Context, userID string, includeArchived bool) ([]model.Project, error)
	Update(ctx context.Context, p model.Project) (model.Project, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

type AttachmentRepository interface {
	Create(ctx context.Context, a model.Attachment) (model.Attachment, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (model.Attachment, error)
	GetByFilename(ctx context.Context, userID, filename string) (model.Attachment, error)
	ListByTask(ctx context.Context, userID string, taskID uuid.UUID) ([]model.Attachment, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

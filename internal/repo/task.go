package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/taskhive-api/internal/model"
	"github.com/taskhive/taskhive-api/internal/taskfilter"
)

var ErrNotFound = errors.New("not found")

const taskColumns = `id, user_id, project_id, title, description, status, priority,
	due_date, estimated_time, actual_time, position, tags, created_at, updated_at`

// Default read order everywhere: position first, newest-created wins ties so
// duplicate positions still produce a deterministic sequence.
const taskOrder = ` ORDER BY position ASC, created_at DESC`

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	t.ID = uuid.New()
	if t.Tags == nil {
		t.Tags = []string{}
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (id, user_id, project_id, title, description, status, priority,
			due_date, estimated_time, actual_time, position, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`, t.ID, t.UserID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority,
		t.DueDate, t.EstimatedTime, t.ActualTime, t.Position, t.Tags,
	).Scan(&t.CreatedAt, &t.UpdatedAt)

	return t, err
}

func (r *TaskRepo) Get(ctx context.Context, userID string, id uuid.UUID) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrNotFound
	}
	return t, err
}

func (r *TaskRepo) List(ctx context.Context, userID string, filter model.TaskFilter) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []interface{}{userID}
	n := 2

	if filter.ProjectID != nil {
		query += fmt.Sprintf(" AND project_id = $%d", n)
		args = append(args, *filter.ProjectID)
		n++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, *filter.Status)
		n++
	}
	if filter.Priority != nil {
		query += fmt.Sprintf(" AND priority = $%d", n)
		args = append(args, *filter.Priority)
		n++
	}
	if filter.Search != nil {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", n, n)
		args = append(args, "%"+*filter.Search+"%")
		n++
	}
	if filter.Tag != nil {
		query += fmt.Sprintf(" AND $%d = ANY(tags)", n)
		args = append(args, *filter.Tag)
		n++
	}
	if filter.DateFilter != nil {
		if c, ok := taskfilter.Resolve(*filter.DateFilter, time.Now()); ok {
			switch c.Kind {
			case taskfilter.KindRange:
				query += fmt.Sprintf(" AND due_date >= $%d AND due_date < $%d", n, n+1)
				args = append(args, c.From, c.To)
				n += 2
			case taskfilter.KindBefore:
				query += fmt.Sprintf(" AND due_date < $%d", n)
				args = append(args, c.To)
				n++
			case taskfilter.KindNull:
				query += " AND due_date IS NULL"
			}
		}
	}

	query += taskOrder

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

// ListByScope returns the tasks sharing a (user, project-or-none) scope.
// A nil projectID means the no-project scope, not "any project".
func (r *TaskRepo) ListByScope(ctx context.Context, userID string, projectID *uuid.UUID) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []interface{}{userID}

	if projectID != nil {
		query += " AND project_id = $2"
		args = append(args, *projectID)
	} else {
		query += " AND project_id IS NULL"
	}
	query += taskOrder

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *TaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	if t.Tags == nil {
		t.Tags = []string{}
	}

	err := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET project_id = $3, title = $4, description = $5, status = $6, priority = $7,
			due_date = $8, estimated_time = $9, actual_time = $10, position = $11,
			tags = $12, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at
	`, t.ID, t.UserID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority,
		t.DueDate, t.EstimatedTime, t.ActualTime, t.Position, t.Tags,
	).Scan(&t.CreatedAt, &t.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrNotFound
	}
	return t, err
}

func (r *TaskRepo) UpdatePosition(ctx context.Context, userID string, id uuid.UUID, position int) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE tasks SET position = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`, id, userID, position)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountOverdue counts unfinished tasks past due across all users. Used by
// the overdue summary worker, not by any request handler.
func (r *TaskRepo) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM tasks
		WHERE due_date IS NOT NULL AND due_date < $1 AND status <> 'completed'
	`, now).Scan(&count)
	return count, err
}

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID, &t.UserID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.DueDate, &t.EstimatedTime, &t.ActualTime, &t.Position, &t.Tags,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func collectTasks(rows pgx.Rows) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

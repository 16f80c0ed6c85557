package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/taskhive-api/internal/model"
)

const projectColumns = `id, user_id, name, description, color, is_archived, created_at, updated_at`

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

func (r *ProjectRepo) Create(ctx context.Context, p model.Project) (model.Project, error) {
	p.ID = uuid.New()

	err := r.pool.QueryRow(ctx, `
		INSERT INTO projects (id, user_id, name, description, color, is_archived)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, p.ID, p.UserID, p.Name, p.Description, p.Color, p.IsArchived,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	return p, err
}

func (r *ProjectRepo) Get(ctx context.Context, userID string, id uuid.UUID) (model.Project, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	p, err := scanProject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

func (r *ProjectRepo) List(ctx context.Context, userID string, includeArchived bool) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = $1`
	if !includeArchived {
		query += ` AND is_archived = false`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepo) Update(ctx context.Context, p model.Project) (model.Project, error) {
	err := r.pool.QueryRow(ctx, `
		UPDATE projects
		SET name = $3, description = $4, color = $5, is_archived = $6, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at
	`, p.ID, p.UserID, p.Name, p.Description, p.Color, p.IsArchived,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

// Delete removes the project; tasks referencing it keep existing with a
// nulled project reference (ON DELETE SET NULL in the schema).
func (r *ProjectRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM projects WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.Color, &p.IsArchived,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

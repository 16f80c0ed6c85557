package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/taskhive-api/internal/model"
)

const attachmentColumns = `id, task_id, user_id, filename, original_name, size, mime_type, storage_path, created_at`

type AttachmentRepo struct {
	pool *pgxpool.Pool
}

func NewAttachmentRepo(pool *pgxpool.Pool) *AttachmentRepo {
	return &AttachmentRepo{pool: pool}
}

func (r *AttachmentRepo) Create(ctx context.Context, a model.Attachment) (model.Attachment, error) {
	a.ID = uuid.New()

	err := r.pool.QueryRow(ctx, `
		INSERT INTO attachments (id, task_id, user_id, filename, original_name, size, mime_type, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, a.ID, a.TaskID, a.UserID, a.Filename, a.OriginalName, a.Size, a.MimeType, a.StoragePath,
	).Scan(&a.CreatedAt)

	return a, err
}

func (r *AttachmentRepo) Get(ctx context.Context, userID string, id uuid.UUID) (model.Attachment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+attachmentColumns+`
		FROM attachments
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	a, err := scanAttachment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, ErrNotFound
	}
	return a, err
}

func (r *AttachmentRepo) GetByFilename(ctx context.Context, userID, filename string) (model.Attachment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+attachmentColumns+`
		FROM attachments
		WHERE filename = $1 AND user_id = $2
	`, filename, userID)

	a, err := scanAttachment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, ErrNotFound
	}
	return a, err
}

func (r *AttachmentRepo) ListByTask(ctx context.Context, userID string, taskID uuid.UUID) ([]model.Attachment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+attachmentColumns+`
		FROM attachments
		WHERE task_id = $1 AND user_id = $2
		ORDER BY created_at DESC
	`, taskID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attachments := make([]model.Attachment, 0)
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

func (r *AttachmentRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM attachments WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAttachment(row pgx.Row) (model.Attachment, error) {
	var a model.Attachment
	err := row.Scan(
		&a.ID, &a.TaskID, &a.UserID, &a.Filename, &a.OriginalName, &a.Size,
		&a.MimeType, &a.StoragePath, &a.CreatedAt,
	)
	return a, err
}

package service

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/model"
	"github.com/taskhive/taskhive-api/internal/repo"
	"github.com/taskhive/taskhive-api/internal/storage"
)

type AttachmentService struct {
	attachments repo.AttachmentRepository
	tasks       repo.TaskRepository
	store       storage.ObjectStore
}

func NewAttachmentService(attachments repo.AttachmentRepository, tasks repo.TaskRepository, store storage.ObjectStore) *AttachmentService {
	return &AttachmentService{
		attachments: attachments,
		tasks:       tasks,
		store:       store,
	}
}

// Upload stores the file bytes, then the record. The size gate runs before
// any store I/O. If the record insert fails after a successful byte upload,
// the uploaded bytes are removed so no orphaned object remains.
func (s *AttachmentService) Upload(ctx context.Context, userID string, taskID uuid.UUID, originalName, mimeType string, size int64, r io.Reader) (model.Attachment, error) {
	var a model.Attachment

	if size > model.MaxAttachmentSize {
		return a, validationf("file exceeds the 10 MiB limit")
	}
	if strings.TrimSpace(originalName) == "" {
		return a, validationf("file is required")
	}

	if _, err := s.tasks.Get(ctx, userID, taskID); err != nil {
		return a, err
	}

	filename := uuid.New().String() + strings.ToLower(path.Ext(originalName))
	storagePath := path.Join("attachments", userID, filename)

	if err := s.store.Upload(ctx, storagePath, mimeType, r); err != nil {
		return a, err
	}

	a, err := s.attachments.Create(ctx, model.Attachment{
		TaskID:       taskID,
		UserID:       userID,
		Filename:     filename,
		OriginalName: originalName,
		Size:         size,
		MimeType:     mimeType,
		StoragePath:  storagePath,
	})
	if err != nil {
		// Best-effort compensation: drop the bytes we just uploaded.
		s.store.Delete(ctx, storagePath)
		return a, err
	}
	return a, nil
}

func (s *AttachmentService) List(ctx context.Context, userID string, taskID uuid.UUID) ([]model.Attachment, error) {
	if _, err := s.tasks.Get(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return s.attachments.ListByTask(ctx, userID, taskID)
}

// Delete removes the stored bytes first, then the record. When byte removal
// fails the record is kept so the attachment stays visible instead of
// silently leaking storage.
func (s *AttachmentService) Delete(ctx context.Context, userID string, taskID, id uuid.UUID) error {
	a, err := s.attachments.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if a.TaskID != taskID {
		return repo.ErrNotFound
	}

	if err := s.store.Delete(ctx, a.StoragePath); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		return err
	}
	return s.attachments.Delete(ctx, userID, id)
}

// Open resolves a stored filename to its record and a byte stream.
func (s *AttachmentService) Open(ctx context.Context, userID, filename string) (model.Attachment, io.ReadCloser, error) {
	a, err := s.attachments.GetByFilename(ctx, userID, filename)
	if err != nil {
		return a, nil, err
	}

	rc, err := s.store.Open(ctx, a.StoragePath)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return a, nil, repo.ErrNotFound
	}
	return a, rc, err
}

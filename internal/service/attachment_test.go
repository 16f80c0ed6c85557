package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/model"
	"github.com/taskhive/taskhive-api/internal/repo"
	"github.com/taskhive/taskhive-api/internal/storage"
)

// countingStore wraps the in-memory store and records calls, so tests can
// assert that the size gate runs before any store I/O.
type countingStore struct {
	*storage.MemoryStore
	uploads    int
	deletes    int
	failUpload bool
	failDelete bool
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: storage.NewMemoryStore()}
}

func (s *countingStore) Upload(ctx context.Context, path, contentType string, r io.Reader) error {
	s.uploads++
	if s.failUpload {
		return errors.New("bucket unavailable")
	}
	return s.MemoryStore.Upload(ctx, path, contentType, r)
}

func (s *countingStore) Delete(ctx context.Context, path string) error {
	s.deletes++
	if s.failDelete {
		return errors.New("bucket unavailable")
	}
	return s.MemoryStore.Delete(ctx, path)
}

func TestAttachmentService_UploadSizeGate(t *testing.T) {
	store := newCountingStore()
	attachments := new(MockAttachmentRepository)
	tasks := new(MockTaskRepository)

	svc := NewAttachmentService(attachments, tasks, store)

	_, err := svc.Upload(context.Background(), "user-1", uuid.New(),
		"huge.bin", "application/octet-stream", model.MaxAttachmentSize+1, strings.NewReader("x"))

	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, store.uploads, "oversized files must be rejected before store I/O")
	attachments.AssertNotCalled(t, "Create")
}

func TestAttachmentService_Upload(t *testing.T) {
	taskID := uuid.New()

	store := newCountingStore()
	tasks := new(MockTaskRepository)
	tasks.On("Get", mock.Anything, "user-1", taskID).Return(model.Task{ID: taskID}, nil)

	attachments := new(MockAttachmentRepository)
	attachments.On("Create", mock.Anything, mock.MatchedBy(func(a model.Attachment) bool {
		return a.TaskID == taskID &&
			a.OriginalName == "report.pdf" &&
			strings.HasSuffix(a.Filename, ".pdf") &&
			a.Filename != "report.pdf" && // stored name is system-generated
			strings.HasPrefix(a.StoragePath, "attachments/user-1/")
	})).Return(model.Attachment{ID: uuid.New(), TaskID: taskID, OriginalName: "report.pdf"}, nil)

	svc := NewAttachmentService(attachments, tasks, store)
	a, err := svc.Upload(context.Background(), "user-1", taskID,
		"report.pdf", "application/pdf", 1024, strings.NewReader("pdf-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "report.pdf", a.OriginalName)
	assert.Equal(t, 1, store.Len(), "bytes stored")
	attachments.AssertExpectations(t)
}

func TestAttachmentService_UploadCompensation(t *testing.T) {
	taskID := uuid.New()

	store := newCountingStore()
	tasks := new(MockTaskRepository)
	tasks.On("Get", mock.Anything, "user-1", taskID).Return(model.Task{ID: taskID}, nil)

	attachments := new(MockAttachmentRepository)
	attachments.On("Create", mock.Anything, mock.Anything).
		Return(model.Attachment{}, errors.New("insert failed"))

	svc := NewAttachmentService(attachments, tasks, store)
	_, err := svc.Upload(context.Background(), "user-1", taskID,
		"report.pdf", "application/pdf", 1024, strings.NewReader("pdf-bytes"))

	assert.EqualError(t, err, "insert failed")
	assert.Equal(t, 1, store.uploads)
	assert.Equal(t, 1, store.deletes, "uploaded bytes must be compensated")
	assert.Zero(t, store.Len(), "no orphaned object remains")
}

func TestAttachmentService_UploadUnknownTask(t *testing.T) {
	taskID := uuid.New()

	store := newCountingStore()
	tasks := new(MockTaskRepository)
	tasks.On("Get", mock.Anything, "user-1", taskID).Return(model.Task{}, repo.ErrNotFound)

	svc := NewAttachmentService(new(MockAttachmentRepository), tasks, store)
	_, err := svc.Upload(context.Background(), "user-1", taskID,
		"report.pdf", "application/pdf", 1024, strings.NewReader("pdf-bytes"))

	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.Zero(t, store.uploads)
}

func TestAttachmentService_DeleteKeepsRecordOnByteFailure(t *testing.T) {
	taskID := uuid.New()
	attID := uuid.New()

	store := newCountingStore()
	store.failDelete = true

	attachments := new(MockAttachmentRepository)
	attachments.On("Get", mock.Anything, "user-1", attID).Return(model.Attachment{
		ID: attID, TaskID: taskID, StoragePath: "attachments/user-1/x.pdf",
	}, nil)

	svc := NewAttachmentService(attachments, new(MockTaskRepository), store)
	err := svc.Delete(context.Background(), "user-1", taskID, attID)

	assert.EqualError(t, err, "bucket unavailable")
	attachments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachmentService_Delete(t *testing.T) {
	taskID := uuid.New()
	attID := uuid.New()

	store := newCountingStore()
	require.NoError(t, store.MemoryStore.Upload(context.Background(),
		"attachments/user-1/x.pdf", "application/pdf", strings.NewReader("data")))

	attachments := new(MockAttachmentRepository)
	attachments.On("Get", mock.Anything, "user-1", attID).Return(model.Attachment{
		ID: attID, TaskID: taskID, StoragePath: "attachments/user-1/x.pdf",
	}, nil)
	attachments.On("Delete", mock.Anything, "user-1", attID).Return(nil)

	svc := NewAttachmentService(attachments, new(MockTaskRepository), store)
	require.NoError(t, svc.Delete(context.Background(), "user-1", taskID, attID))

	assert.Zero(t, store.Len(), "bytes removed before the record")
	attachments.AssertExpectations(t)
}

func TestAttachmentService_DeleteWrongTask(t *testing.T) {
	attID := uuid.New()

	attachments := new(MockAttachmentRepository)
	attachments.On("Get", mock.Anything, "user-1", attID).Return(model.Attachment{
		ID: attID, TaskID: uuid.New(), StoragePath: "attachments/user-1/x.pdf",
	}, nil)

	svc := NewAttachmentService(attachments, new(MockTaskRepository), newCountingStore())
	err := svc.Delete(context.Background(), "user-1", uuid.New(), attID)

	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestAttachmentService_Open(t *testing.T) {
	store := newCountingStore()
	require.NoError(t, store.MemoryStore.Upload(context.Background(),
		"attachments/user-1/abc.pdf", "application/pdf", strings.NewReader("pdf-bytes")))

	attachments := new(MockAttachmentRepository)
	attachments.On("GetByFilename", mock.Anything, "user-1", "abc.pdf").Return(model.Attachment{
		Filename: "abc.pdf", OriginalName: "report.pdf", MimeType: "application/pdf",
		StoragePath: "attachments/user-1/abc.pdf",
	}, nil)

	svc := NewAttachmentService(attachments, new(MockTaskRepository), store)
	a, rc, err := svc.Open(context.Background(), "user-1", "abc.pdf")

	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))
	assert.Equal(t, "report.pdf", a.OriginalName)
}

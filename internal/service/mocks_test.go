package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/taskhive/taskhive-api/internal/model"
)

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, t model.Task) (model.Task, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Get(ctx context.Context, userID string, id uuid.UUID) (model.Task, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, userID string, filter model.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByScope(ctx context.Context, userID string, projectID *uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, userID, projectID)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, t model.Task) (model.Task, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) UpdatePosition(ctx context.Context, userID string, id uuid.UUID, position int) error {
	args := m.Called(ctx, userID, id, position)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, p model.Project) (model.Project, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectRepository) Get(ctx context.Context, userID string, id uuid.UUID) (model.Project, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectRepository) List(ctx context.Context, userID string, includeArchived bool) ([]model.Project, error) {
	args := m.Called(ctx, userID, includeArchived)
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, p model.Project) (model.Project, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) Create(ctx context.Context, a model.Attachment) (model.Attachment, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Get(ctx context.Context, userID string, id uuid.UUID) (model.Attachment, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) GetByFilename(ctx context.Context, userID, filename string) (model.Attachment, error) {
	args := m.Called(ctx, userID, filename)
	return args.Get(0).(model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) ListByTask(ctx context.Context, userID string, taskID uuid.UUID) ([]model.Attachment, error) {
	args := m.Called(ctx, userID, taskID)
	return args.Get(0).([]model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

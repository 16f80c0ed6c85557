package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/model"
	"github.com/taskhive/taskhive-api/internal/repo"
)

type ProjectService struct {
	repo repo.ProjectRepository
}

func NewProjectService(repo repo.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) Create(ctx context.Context, userID string, p model.Project) (model.Project, error) {
	p.UserID = userID
	if p.Color == "" {
		p.Color = model.DefaultProjectColor
	}
	if err := validateProject(p); err != nil {
		return p, err
	}
	return s.repo.Create(ctx, p)
}

func (s *ProjectService) Get(ctx context.Context, userID string, id uuid.UUID) (model.Project, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *ProjectService) List(ctx context.Context, userID string, includeArchived bool) ([]model.Project, error) {
	return s.repo.List(ctx, userID, includeArchived)
}

func (s *ProjectService) Update(ctx context.Context, userID string, p model.Project) (model.Project, error) {
	p.UserID = userID
	if p.Color == "" {
		p.Color = model.DefaultProjectColor
	}
	if err := validateProject(p); err != nil {
		return p, err
	}
	return s.repo.Update(ctx, p)
}

func (s *ProjectService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

func validateProject(p model.Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return validationf("name is required")
	}
	return nil
}

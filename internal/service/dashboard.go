package service

import (
	"context"
	"time"

	"github.com/taskhive/taskhive-api/internal/model"
	"github.com/taskhive/taskhive-api/internal/repo"
	"github.com/taskhive/taskhive-api/internal/stats"
)

const (
	defaultAnalyticsWindow = 7
	maxAnalyticsWindow     = 365
)

// DashboardService fetches the caller's full task and project lists and
// hands them to the pure aggregation functions.
type DashboardService struct {
	tasks    repo.TaskRepository
	projects repo.ProjectRepository
}

func NewDashboardService(tasks repo.TaskRepository, projects repo.ProjectRepository) *DashboardService {
	return &DashboardService{tasks: tasks, projects: projects}
}

func (s *DashboardService) Stats(ctx context.Context, userID string) (stats.Dashboard, error) {
	tasks, projects, err := s.fetch(ctx, userID)
	if err != nil {
		return stats.Dashboard{}, err
	}
	return stats.ComputeDashboard(tasks, projects, time.Now()), nil
}

func (s *DashboardService) Analytics(ctx context.Context, userID string, windowDays int) (stats.Analytics, error) {
	if windowDays < 1 {
		windowDays = defaultAnalyticsWindow
	}
	if windowDays > maxAnalyticsWindow {
		windowDays = maxAnalyticsWindow
	}

	tasks, projects, err := s.fetch(ctx, userID)
	if err != nil {
		return stats.Analytics{}, err
	}
	return stats.ComputeAnalytics(tasks, projects, time.Now(), windowDays), nil
}

func (s *DashboardService) fetch(ctx context.Context, userID string) ([]model.Task, []model.Project, error) {
	tasks, err := s.tasks.List(ctx, userID, model.TaskFilter{})
	if err != nil {
		return nil, nil, err
	}
	projects, err := s.projects.List(ctx, userID, false)
	if err != nil {
		return nil, nil, err
	}
	return tasks, projects, nil
}

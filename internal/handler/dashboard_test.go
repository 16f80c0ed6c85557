package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/model"
)

func TestDashboardHandler_StatsEmpty(t *testing.T) {
	env := newTestEnv()

	env.tasks.On("List", mock.Anything, "user-1", model.TaskFilter{}).Return([]model.Task{}, nil)
	env.projects.On("List", mock.Anything, "user-1", false).Return([]model.Project{}, nil)

	rec := doRequest(t, env.router, http.MethodGet, "/api/dashboard/stats", "good-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.JSONEq(t, `0`, string(got["totalTasks"]))
	assert.JSONEq(t, `0`, string(got["completionRate"]))
	assert.JSONEq(t, `[]`, string(got["recentTasks"]))
}

func TestDashboardHandler_StatsCounts(t *testing.T) {
	env := newTestEnv()
	now := time.Now()

	env.tasks.On("List", mock.Anything, "user-1", model.TaskFilter{}).Return([]model.Task{
		{Title: "a", Status: model.StatusCompleted, UpdatedAt: now, CreatedAt: now},
		{Title: "b", Status: model.StatusTodo, CreatedAt: now},
	}, nil)
	env.projects.On("List", mock.Anything, "user-1", false).Return([]model.Project{}, nil)

	rec := doRequest(t, env.router, http.MethodGet, "/api/dashboard/stats", "good-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.JSONEq(t, `2`, string(got["totalTasks"]))
	assert.JSONEq(t, `1`, string(got["completedTasks"]))
	assert.JSONEq(t, `50`, string(got["completionRate"]))
}

func TestDashboardHandler_AnalyticsWindow(t *testing.T) {
	env := newTestEnv()

	env.tasks.On("List", mock.Anything, "user-1", model.TaskFilter{}).Return([]model.Task{}, nil)
	env.projects.On("List", mock.Anything, "user-1", false).Return([]model.Project{}, nil)

	rec := doRequest(t, env.router, http.MethodGet, "/api/analytics?days=3", "good-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Activity []json.RawMessage `json:"activity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Activity, 3)
}

// Package stats computes dashboard and analytics aggregates. Every function
// is a pure fold over its inputs so results are deterministic for a fixed
// "now"; no I/O happens here.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/model"
)

const dateLayout = "2006-01-02"

type Dashboard struct {
	TotalTasks      int          `json:"totalTasks"`
	CompletedTasks  int          `json:"completedTasks"`
	InProgressTasks int          `json:"inProgressTasks"`
	TodoTasks       int          `json:"todoTasks"`
	OverdueTasks    int          `json:"overdueTasks"`
	DueToday        int          `json:"dueToday"`
	ProjectCount    int          `json:"projectCount"`
	CompletionRate  int          `json:"completionRate"`
	RecentTasks     []model.Task `json:"recentTasks"`
}

type ProjectBreakdown struct {
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Total     int       `json:"total"`
	Completed int       `json:"completed"`
}

type ActivityDay struct {
	Date      string `json:"date"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

type Analytics struct {
	ByPriority    map[string]int     `json:"byPriority"`
	Projects      []ProjectBreakdown `json:"projects"`
	Activity      []ActivityDay      `json:"activity"`
	AvgActualTime float64            `json:"avgActualTime"`
}

// ComputeDashboard aggregates the caller's tasks and projects.
//
// The overdue count here excludes completed tasks. The list endpoint's
// "overdue" date filter does not; the discrepancy exists in the source
// system and is preserved on purpose.
func ComputeDashboard(tasks []model.Task, projects []model.Project, now time.Time) Dashboard {
	d := Dashboard{
		TotalTasks:   len(tasks),
		ProjectCount: len(projects),
		RecentTasks:  []model.Task{},
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	for _, t := range tasks {
		switch t.Status {
		case model.StatusCompleted:
			d.CompletedTasks++
		case model.StatusInProgress:
			d.InProgressTasks++
		case model.StatusTodo:
			d.TodoTasks++
		}
		if t.DueDate != nil {
			if t.DueDate.Before(now) && t.Status != model.StatusCompleted {
				d.OverdueTasks++
			}
			if !t.DueDate.Before(dayStart) && t.DueDate.Before(dayEnd) {
				d.DueToday++
			}
		}
	}

	d.CompletionRate = completionRate(d.CompletedTasks, d.TotalTasks)
	d.RecentTasks = recentTasks(tasks, 5)
	return d
}

// ComputeAnalytics produces the breakdowns for a trailing window of
// windowDays days ending today. Completion day is approximated by the task's
// last update when its status is completed; any later edit of a completed
// task moves its apparent completion day.
func ComputeAnalytics(tasks []model.Task, projects []model.Project, now time.Time, windowDays int) Analytics {
	if windowDays < 1 {
		windowDays = 1
	}

	a := Analytics{
		ByPriority: make(map[string]int, len(model.Priorities)),
		Projects:   []ProjectBreakdown{},
	}
	for _, p := range model.Priorities {
		a.ByPriority[p] = 0
	}

	totalByProject := make(map[uuid.UUID]int)
	completedByProject := make(map[uuid.UUID]int)

	var actualSum, actualCount int
	for _, t := range tasks {
		if _, ok := a.ByPriority[t.Priority]; ok {
			a.ByPriority[t.Priority]++
		}
		if t.ProjectID != nil {
			totalByProject[*t.ProjectID]++
			if t.Status == model.StatusCompleted {
				completedByProject[*t.ProjectID]++
			}
		}
		if t.Status == model.StatusCompleted && t.ActualTime != nil {
			actualSum += *t.ActualTime
			actualCount++
		}
	}

	// Projects with no matching tasks are omitted from the breakdown.
	for _, p := range projects {
		total := totalByProject[p.ID]
		if total == 0 {
			continue
		}
		a.Projects = append(a.Projects, ProjectBreakdown{
			ProjectID: p.ID,
			Name:      p.Name,
			Color:     p.Color,
			Total:     total,
			Completed: completedByProject[p.ID],
		})
	}

	if actualCount > 0 {
		a.AvgActualTime = float64(actualSum) / float64(actualCount)
	}

	a.Activity = activitySeries(tasks, now, windowDays)
	return a
}

func activitySeries(tasks []model.Task, now time.Time, windowDays int) []ActivityDay {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	created := make(map[string]int)
	completed := make(map[string]int)
	for _, t := range tasks {
		created[t.CreatedAt.In(now.Location()).Format(dateLayout)]++
		if t.Status == model.StatusCompleted {
			completed[t.UpdatedAt.In(now.Location()).Format(dateLayout)]++
		}
	}

	series := make([]ActivityDay, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		key := dayStart.AddDate(0, 0, -i).Format(dateLayout)
		series = append(series, ActivityDay{
			Date:      key,
			Created:   created[key],
			Completed: completed[key],
		})
	}
	return series
}

func recentTasks(tasks []model.Task, n int) []model.Task {
	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// completionRate is round(completed/total*100), defined as 0 for an empty set.
func completionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

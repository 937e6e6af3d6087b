// Package tasks owns the task lifecycle: creation, team-scoped
// listing, subtasks, status transitions, delay-risk classification,
// CSV export and the AI-backed augmentation endpoints.
package tasks

import "time"

const (
	StatusTodo       = "To-Do"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"

	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

type Task struct {
	ID           int64     `json:"id"`
	TeamID       int64     `json:"team_id"`
	Description  string    `json:"description"`
	AssignedTo   int64     `json:"assigned_to"`
	AssigneeName string    `json:"assignee_name"`
	Priority     string    `json:"priority"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	SubTasks     []string  `json:"sub_tasks"`
	Explanation  string    `json:"explanation,omitempty"`
	DelayRisk    string    `json:"delay_risk,omitempty"`
}

type CreateTaskRequest struct {
	Description string `json:"description" form:"description" binding:"required,max=2000"`
	AssignedTo  int64  `json:"assigned_to" form:"assigned_to" binding:"required,gt=0"`
	Priority    string `json:"priority" form:"priority" binding:"required,oneof=Low Medium High"`
}

type SubtaskRequest struct {
	Subtask string `json:"subtask" form:"subtask" binding:"required,max=500"`
}

type SuggestRequest struct {
	Description string `json:"description" form:"description" binding:"required,max=2000"`
}

type ChatRequest struct {
	Message string `json:"message" form:"message" binding:"required,max=2000"`
}

// Prediction is the per-task delay-risk view, computed at read time and
// never persisted.
type Prediction struct {
	Task       string `json:"task"`
	AssignedTo string `json:"assigned_to"`
	Priority   string `json:"priority"`
	Status     string `json:"status"`
	Prediction string `json:"prediction"`
}

// StatusCountSet holds the dashboard counters.
type StatusCountSet struct {
	Total      int64 `json:"total"`
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"in_progress"`
	Done       int64 `json:"done"`
}

func validStatus(status string) bool {
	return status == StatusTodo || status == StatusInProgress || status == StatusDone
}

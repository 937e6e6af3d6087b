package tasks

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the persistence seam of the task component. PgxStore is the
// production implementation; tests substitute an in-memory one. Missing
// tasks are signalled with pgx.ErrNoRows by every implementation.
type Store interface {
	InsertTask(ctx context.Context, teamID int64, description string, assignedTo int64, priority string) (Task, error)
	GetTask(ctx context.Context, taskID int64) (Task, error)
	ListTasks(ctx context.Context, teamID *int64) ([]Task, error)
	AppendSubtask(ctx context.Context, taskID int64, body string) error
	UpdateStatus(ctx context.Context, taskID int64, status string) error
	DeleteTask(ctx context.Context, taskID int64) error
	SetExplanation(ctx context.Context, taskID int64, text string) error
	StatusCounts(ctx context.Context, teamID *int64) (StatusCountSet, error)
	AssigneeTeam(ctx context.Context, userID int64) (int64, error)
}

var db Store

// UsePool hands the shared connection pool to this package. Called once
// by the server during startup.
func UsePool(p *pgxpool.Pool) {
	db = &PgxStore{pool: p}
}

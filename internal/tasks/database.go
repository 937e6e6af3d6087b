package tasks

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"intertask/internal/utils"
)

// PgxStore is the Postgres-backed Store used in production.
type PgxStore struct {
	pool *pgxpool.Pool
}

// InsertTask creates a task in To-Do state with the current wall-clock
// time.
func (s *PgxStore) InsertTask(ctx context.Context, teamID int64, description string, assignedTo int64, priority string) (Task, error) {
	t := Task{
		TeamID:      teamID,
		Description: description,
		AssignedTo:  assignedTo,
		Priority:    priority,
		Status:      StatusTodo,
		CreatedAt:   utils.CurrentTime(),
		SubTasks:    []string{},
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO tasks (team_id, description, assigned_to, priority, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, teamID, description, assignedTo, priority, StatusTodo, t.CreatedAt).Scan(&t.ID)

	return t, err
}

// GetTask loads one task with its ordered subtasks and the assignee's
// display name.
func (s *PgxStore) GetTask(ctx context.Context, taskID int64) (Task, error) {
	t := Task{SubTasks: []string{}}
	err := s.pool.QueryRow(ctx, `
		SELECT t.id, t.team_id, t.description, t.assigned_to,
		       COALESCE(u.display_name, ''), t.priority, t.status,
		       t.created_at, COALESCE(t.explanation, '')
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assigned_to
		WHERE t.id = $1
	`, taskID).Scan(&t.ID, &t.TeamID, &t.Description, &t.AssignedTo,
		&t.AssigneeName, &t.Priority, &t.Status, &t.CreatedAt, &t.Explanation)
	if err != nil {
		return Task{}, err
	}

	subs, err := s.subtasksByTask(ctx, []int64{t.ID})
	if err != nil {
		return Task{}, err
	}
	if list, ok := subs[t.ID]; ok {
		t.SubTasks = list
	}

	return t, nil
}

// ListTasks returns tasks newest first. A nil teamID lists the whole
// store, which is what unauthenticated callers get.
func (s *PgxStore) ListTasks(ctx context.Context, teamID *int64) ([]Task, error) {
	where := ""
	args := []any{}
	if teamID != nil {
		where = "WHERE t.team_id = $1"
		args = append(args, *teamID)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT t.id, t.team_id, t.description, t.assigned_to,
		       COALESCE(u.display_name, ''), t.priority, t.status,
		       t.created_at, COALESCE(t.explanation, '')
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assigned_to
		`+where+`
		ORDER BY t.id DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0, 16)
	ids := make([]int64, 0, 16)
	for rows.Next() {
		t := Task{SubTasks: []string{}}
		if err := rows.Scan(&t.ID, &t.TeamID, &t.Description, &t.AssignedTo,
			&t.AssigneeName, &t.Priority, &t.Status, &t.CreatedAt, &t.Explanation); err != nil {
			return nil, err
		}
		out = append(out, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subs, err := s.subtasksByTask(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if list, ok := subs[out[i].ID]; ok {
			out[i].SubTasks = list
		}
	}

	return out, nil
}

// subtasksByTask loads the ordered subtask bodies of the given tasks.
// Tasks without rows simply read as empty lists.
func (s *PgxStore) subtasksByTask(ctx context.Context, taskIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(taskIDs))
	if len(taskIDs) == 0 {
		return out, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT task_id, body
		FROM task_subtasks
		WHERE task_id = ANY($1)
		ORDER BY task_id, position ASC
	`, taskIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			body string
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		out[id] = append(out[id], body)
	}

	return out, rows.Err()
}

// AppendSubtask adds body to the end of the task's subtask list.
// Returns pgx.ErrNoRows when the task does not exist.
func (s *PgxStore) AppendSubtask(ctx context.Context, taskID int64, body string) error {
	var exists bool
	if err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)
	`, taskID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return pgx.ErrNoRows
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO task_subtasks (task_id, position, body)
		VALUES ($1,
		        (SELECT COALESCE(MAX(position), 0) + 1 FROM task_subtasks WHERE task_id = $1),
		        $2)
	`, taskID, body)

	return err
}

func (s *PgxStore) UpdateStatus(ctx context.Context, taskID int64, status string) error {
	ct, err := s.pool.Exec(ctx, `UPDATE tasks SET status = $1 WHERE id = $2`, status, taskID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// DeleteTask hard-deletes a task; subtask rows cascade, submissions
// stay behind as orphaned audit records.
func (s *PgxStore) DeleteTask(ctx context.Context, taskID int64) error {
	ct, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// SetExplanation caches generated explanation text onto the task.
func (s *PgxStore) SetExplanation(ctx context.Context, taskID int64, text string) error {
	ct, err := s.pool.Exec(ctx, `UPDATE tasks SET explanation = $1 WHERE id = $2`, text, taskID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// StatusCounts computes the dashboard counters, team-scoped when teamID
// is non-nil.
func (s *PgxStore) StatusCounts(ctx context.Context, teamID *int64) (StatusCountSet, error) {
	where := ""
	args := []any{}
	if teamID != nil {
		where = "WHERE team_id = $1"
		args = append(args, *teamID)
	}

	var counts StatusCountSet
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = '`+StatusTodo+`'),
		       COUNT(*) FILTER (WHERE status = '`+StatusInProgress+`'),
		       COUNT(*) FILTER (WHERE status = '`+StatusDone+`')
		FROM tasks
		`+where,
		args...).Scan(&counts.Total, &counts.Todo, &counts.InProgress, &counts.Done)

	return counts, err
}

// AssigneeTeam resolves the team a user belongs to, for the
// creation-time invariant that assignees sit in the lead's team.
func (s *PgxStore) AssigneeTeam(ctx context.Context, userID int64) (int64, error) {
	var teamID int64
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(team_id, 0) FROM users WHERE id = $1
	`, userID).Scan(&teamID)

	return teamID, err
}

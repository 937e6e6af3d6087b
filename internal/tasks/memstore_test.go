package tasks

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"intertask/internal/utils"
)

// memStore is an in-memory Store used by the package tests in place of
// Postgres. Missing tasks are reported as pgx.ErrNoRows like the real
// store, and subtask order is append order.
type memStore struct {
	tasks     map[int64]Task
	subtasks  map[int64][]string
	userTeams map[int64]int64
	nextID    int64
}

func newMemStore() *memStore {
	return &memStore{
		tasks:     map[int64]Task{},
		subtasks:  map[int64][]string{},
		userTeams: map[int64]int64{},
	}
}

func (s *memStore) InsertTask(_ context.Context, teamID int64, description string, assignedTo int64, priority string) (Task, error) {
	s.nextID++
	t := Task{
		ID:          s.nextID,
		TeamID:      teamID,
		Description: description,
		AssignedTo:  assignedTo,
		Priority:    priority,
		Status:      StatusTodo,
		CreatedAt:   utils.CurrentTime(),
		SubTasks:    []string{},
	}
	s.tasks[t.ID] = t

	return t, nil
}

func (s *memStore) GetTask(_ context.Context, taskID int64) (Task, error) {
	t, ok := s.tasks[taskID]
	if !ok {
		return Task{}, pgx.ErrNoRows
	}
	t.SubTasks = append([]string{}, s.subtasks[taskID]...)

	return t, nil
}

func (s *memStore) ListTasks(ctx context.Context, teamID *int64) ([]Task, error) {
	ids := make([]int64, 0, len(s.tasks))
	for id := range s.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	out := make([]Task, 0, len(ids))
	for _, id := range ids {
		if teamID != nil && s.tasks[id].TeamID != *teamID {
			continue
		}
		t, err := s.GetTask(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, nil
}

func (s *memStore) AppendSubtask(_ context.Context, taskID int64, body string) error {
	if _, ok := s.tasks[taskID]; !ok {
		return pgx.ErrNoRows
	}
	s.subtasks[taskID] = append(s.subtasks[taskID], body)

	return nil
}

func (s *memStore) UpdateStatus(_ context.Context, taskID int64, status string) error {
	t, ok := s.tasks[taskID]
	if !ok {
		return pgx.ErrNoRows
	}
	t.Status = status
	s.tasks[taskID] = t

	return nil
}

func (s *memStore) DeleteTask(_ context.Context, taskID int64) error {
	if _, ok := s.tasks[taskID]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.tasks, taskID)
	delete(s.subtasks, taskID)

	return nil
}

func (s *memStore) SetExplanation(_ context.Context, taskID int64, text string) error {
	t, ok := s.tasks[taskID]
	if !ok {
		return pgx.ErrNoRows
	}
	t.Explanation = text
	s.tasks[taskID] = t

	return nil
}

func (s *memStore) StatusCounts(_ context.Context, teamID *int64) (StatusCountSet, error) {
	var counts StatusCountSet
	for _, t := range s.tasks {
		if teamID != nil && t.TeamID != *teamID {
			continue
		}
		counts.Total++
		switch t.Status {
		case StatusTodo:
			counts.Todo++
		case StatusInProgress:
			counts.InProgress++
		case StatusDone:
			counts.Done++
		}
	}

	return counts, nil
}

func (s *memStore) AssigneeTeam(_ context.Context, userID int64) (int64, error) {
	teamID, ok := s.userTeams[userID]
	if !ok {
		return 0, pgx.ErrNoRows
	}

	return teamID, nil
}

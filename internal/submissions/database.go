package submissions

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"intertask/internal/utils"
)

// Store is the persistence seam of the submission component. PgxStore
// is the production implementation; tests substitute an in-memory one.
type Store interface {
	InsertSubmission(ctx context.Context, taskID, memberID int64, link string) (Submission, error)
	ListForMember(ctx context.Context, memberID int64) ([]Submission, error)
}

var db Store

// UsePool hands the shared connection pool to this package. Called once
// by the server during startup.
func UsePool(p *pgxpool.Pool) {
	db = &PgxStore{pool: p}
}

// PgxStore is the Postgres-backed Store used in production.
type PgxStore struct {
	pool *pgxpool.Pool
}

// InsertSubmission appends a work-link row. The link is trimmed but not
// otherwise validated; repeat submissions each create a new row.
func (s *PgxStore) InsertSubmission(ctx context.Context, taskID, memberID int64, link string) (Submission, error) {
	sub := Submission{
		TaskID:      taskID,
		MemberID:    memberID,
		GithubLink:  strings.TrimSpace(link),
		SubmittedOn: utils.CurrentTime(),
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO submissions (task_id, member_id, github_link, submitted_on)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, sub.TaskID, sub.MemberID, sub.GithubLink, sub.SubmittedOn).Scan(&sub.ID)

	return sub, err
}

// ListForMember returns a member's submissions, newest first.
func (s *PgxStore) ListForMember(ctx context.Context, memberID int64) ([]Submission, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, task_id, member_id, github_link, submitted_on
		FROM submissions
		WHERE member_id = $1
		ORDER BY id DESC
	`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Submission, 0, 8)
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.ID, &sub.TaskID, &sub.MemberID, &sub.GithubLink, &sub.SubmittedOn); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}

	return out, rows.Err()
}

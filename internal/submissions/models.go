// Package submissions records members' externally-hosted work links
// against tasks. Rows are append-only audit records; repeat submissions
// on the same task each create a new row.
package submissions

import "time"

type Submission struct {
	ID          int64     `json:"id"`
	TaskID      int64     `json:"task_id"`
	MemberID    int64     `json:"member_id"`
	GithubLink  string    `json:"github_link"`
	SubmittedOn time.Time `json:"submitted_on"`
}

type SubmitRequest struct {
	GithubLink string `json:"github_link" form:"github_link" binding:"required,max=500"`
}

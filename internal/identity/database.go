package identity

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxStore is the Postgres-backed Store used in production.
type PgxStore struct {
	pool *pgxpool.Pool
}

func (s *PgxStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)
	`, username).Scan(&exists)

	return exists, err
}

func (s *PgxStore) MemberCodeTaken(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE member_code = $1)
	`, code).Scan(&exists)

	return exists, err
}

func (s *PgxStore) InsertLead(ctx context.Context, username, displayName, passwordHash string) (User, error) {
	u := User{Username: username, DisplayName: displayName, Role: "lead"}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (username, display_name, password_hash, role)
		VALUES ($1, $2, $3, 'lead')
		RETURNING id, created_at
	`, username, displayName, passwordHash).Scan(&u.ID, &u.CreatedAt)

	return u, err
}

// InsertMember registers a member account bound to a team, recording
// the consumed join code.
func (s *PgxStore) InsertMember(ctx context.Context, teamID int64, memberCode, username, displayName, passwordHash string) (User, error) {
	u := User{
		Username:    username,
		DisplayName: displayName,
		Role:        "member",
		TeamID:      teamID,
		MemberCode:  memberCode,
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (username, display_name, password_hash, role, team_id, member_code)
		VALUES ($1, $2, $3, 'member', $4, $5)
		RETURNING id, created_at
	`, username, displayName, passwordHash, teamID, memberCode).Scan(&u.ID, &u.CreatedAt)

	return u, err
}

// UserWithHash loads a user row and its password hash for the login
// comparison. Returns pgx.ErrNoRows when the username is unknown.
func (s *PgxStore) UserWithHash(ctx context.Context, username string) (User, string, error) {
	var (
		u    User
		hash string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, display_name, password_hash, role,
		       COALESCE(team_id, 0), COALESCE(member_code, ''), created_at
		FROM users
		WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.DisplayName, &hash, &u.Role, &u.TeamID, &u.MemberCode, &u.CreatedAt)

	return u, hash, err
}

func (s *PgxStore) UserByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, display_name, role,
		       COALESCE(team_id, 0), COALESCE(member_code, ''), created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.DisplayName, &u.Role, &u.TeamID, &u.MemberCode, &u.CreatedAt)

	return u, err
}

// InsertTeam inserts a team owned by leadID and points the lead's
// team_id at it, in one transaction. A lead may own one team.
func (s *PgxStore) InsertTeam(ctx context.Context, leadID int64, teamCode string, memberCount int) (Team, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Team{}, err
	}
	defer tx.Rollback(ctx)

	var currentTeam int64
	if err := tx.QueryRow(ctx, `
		SELECT COALESCE(team_id, 0) FROM users WHERE id = $1 AND role = 'lead'
	`, leadID).Scan(&currentTeam); err != nil {
		return Team{}, err
	}
	if currentTeam != 0 {
		return Team{}, ErrLeadHasTeam
	}

	t := Team{TeamCode: teamCode, LeadID: leadID, MemberCount: memberCount}
	err = tx.QueryRow(ctx, `
		INSERT INTO teams (team_code, lead_id, member_count)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, teamCode, leadID, memberCount).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return Team{}, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE users SET team_id = $1 WHERE id = $2
	`, t.ID, leadID); err != nil {
		return Team{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Team{}, err
	}

	return t, nil
}

// TeamByCode resolves a team from its shareable code. Returns
// pgx.ErrNoRows when no team matches.
func (s *PgxStore) TeamByCode(ctx context.Context, teamCode string) (Team, error) {
	var t Team
	err := s.pool.QueryRow(ctx, `
		SELECT id, team_code, lead_id, member_count, created_at
		FROM teams
		WHERE team_code = $1
	`, teamCode).Scan(&t.ID, &t.TeamCode, &t.LeadID, &t.MemberCount, &t.CreatedAt)

	return t, err
}

// TeamMembers returns the member accounts of a team, join order.
func (s *PgxStore) TeamMembers(ctx context.Context, teamID int64) ([]User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, username, display_name, role,
		       COALESCE(team_id, 0), COALESCE(member_code, ''), created_at
		FROM users
		WHERE team_id = $1 AND role = 'member'
		ORDER BY id ASC
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]User, 0, 8)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Role, &u.TeamID, &u.MemberCode, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}

	return out, rows.Err()
}

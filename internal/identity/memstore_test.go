package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"intertask/internal/authmw"
	"intertask/internal/utils"
)

// memStore is an in-memory Store used by the package tests in place of
// Postgres. Misses are reported as pgx.ErrNoRows like the real store.
type memStore struct {
	users  []User
	hashes map[string]string
	teams  []Team
	nextID int64

	failUserByID bool
}

func newMemStore() *memStore {
	return &memStore{hashes: map[string]string{}}
}

func (s *memStore) id() int64 {
	s.nextID++

	return s.nextID
}

func (s *memStore) UsernameTaken(_ context.Context, username string) (bool, error) {
	for _, u := range s.users {
		if u.Username == username {
			return true, nil
		}
	}

	return false, nil
}

func (s *memStore) MemberCodeTaken(_ context.Context, code string) (bool, error) {
	for _, u := range s.users {
		if u.MemberCode == code {
			return true, nil
		}
	}

	return false, nil
}

func (s *memStore) InsertLead(_ context.Context, username, displayName, passwordHash string) (User, error) {
	u := User{
		ID:          s.id(),
		Username:    username,
		DisplayName: displayName,
		Role:        authmw.RoleLead,
		CreatedAt:   utils.CurrentTime(),
	}
	s.users = append(s.users, u)
	s.hashes[username] = passwordHash

	return u, nil
}

func (s *memStore) InsertMember(_ context.Context, teamID int64, memberCode, username, displayName, passwordHash string) (User, error) {
	u := User{
		ID:          s.id(),
		Username:    username,
		DisplayName: displayName,
		Role:        authmw.RoleMember,
		TeamID:      teamID,
		MemberCode:  memberCode,
		CreatedAt:   utils.CurrentTime(),
	}
	s.users = append(s.users, u)
	s.hashes[username] = passwordHash

	return u, nil
}

func (s *memStore) UserWithHash(_ context.Context, username string) (User, string, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, s.hashes[username], nil
		}
	}

	return User{}, "", pgx.ErrNoRows
}

func (s *memStore) UserByID(_ context.Context, id int64) (User, error) {
	if s.failUserByID {
		return User{}, errors.New("store unavailable")
	}
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}

	return User{}, pgx.ErrNoRows
}

func (s *memStore) InsertTeam(_ context.Context, leadID int64, teamCode string, memberCount int) (Team, error) {
	for i, u := range s.users {
		if u.ID != leadID || u.Role != authmw.RoleLead {
			continue
		}
		if u.TeamID != 0 {
			return Team{}, ErrLeadHasTeam
		}

		t := Team{
			ID:          s.id(),
			TeamCode:    teamCode,
			LeadID:      leadID,
			MemberCount: memberCount,
			CreatedAt:   utils.CurrentTime(),
		}
		s.teams = append(s.teams, t)
		s.users[i].TeamID = t.ID

		return t, nil
	}

	return Team{}, pgx.ErrNoRows
}

func (s *memStore) TeamByCode(_ context.Context, teamCode string) (Team, error) {
	for _, t := range s.teams {
		if t.TeamCode == teamCode {
			return t, nil
		}
	}

	return Team{}, pgx.ErrNoRows
}

func (s *memStore) TeamMembers(_ context.Context, teamID int64) ([]User, error) {
	out := make([]User, 0, 8)
	for _, u := range s.users {
		if u.TeamID == teamID && u.Role == authmw.RoleMember {
			out = append(out, u)
		}
	}

	return out, nil
}

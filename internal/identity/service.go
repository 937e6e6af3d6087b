package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// The identity operations, expressed over the Store seam. Domain
// outcomes surface as the package's sentinel errors so handlers can
// match them with errors.Is.

// RegisterLead creates a standalone lead account. Username uniqueness
// is checked case-sensitively over the full user set.
func RegisterLead(ctx context.Context, username, displayName, password string) (User, error) {
	taken, err := db.UsernameTaken(ctx, username)
	if err != nil {
		return User{}, err
	}
	if taken {
		return User{}, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return db.InsertLead(ctx, username, displayName, string(hash))
}

// Authenticate checks a username+password pair scoped to the expected
// role. Unknown usernames, bad passwords and role mismatches all come
// back as ErrInvalidCredentials.
func Authenticate(ctx context.Context, username, password, role string) (User, error) {
	user, hash, err := db.UserWithHash(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrInvalidCredentials
		}

		return User{}, err
	}

	if user.Role != role || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// CreateTeam mints a fresh team code, stores the team under the lead
// and returns it with the printable member codes.
func CreateTeam(ctx context.Context, leadID int64, memberCount int) (Team, []string, error) {
	team, err := db.InsertTeam(ctx, leadID, NewTeamCode(), memberCount)
	if err != nil {
		return Team{}, nil, err
	}

	return team, MemberCodes(team.TeamCode, team.MemberCount), nil
}

// JoinTeam consumes a member join code and creates the member account
// bound to the code's team. A code is consumable at most once:
// the second join with the same code fails with ErrCodeAlreadyUsed.
func JoinTeam(ctx context.Context, memberCode, username, displayName, password string) (User, error) {
	teamCode, ok := TeamCodeOf(memberCode)
	if !ok {
		return User{}, ErrInvalidJoinCode
	}

	team, err := db.TeamByCode(ctx, teamCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrInvalidJoinCode
		}

		return User{}, err
	}

	used, err := db.MemberCodeTaken(ctx, memberCode)
	if err != nil {
		return User{}, err
	}
	if used {
		return User{}, ErrCodeAlreadyUsed
	}

	taken, err := db.UsernameTaken(ctx, username)
	if err != nil {
		return User{}, err
	}
	if taken {
		return User{}, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return db.InsertMember(ctx, team.ID, memberCode, username, displayName, string(hash))
}

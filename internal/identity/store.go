package identity

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the persistence seam of the identity component. PgxStore is
// the production implementation; tests substitute an in-memory one.
// Absent rows are signalled with pgx.ErrNoRows by every implementation.
type Store interface {
	UsernameTaken(ctx context.Context, username string) (bool, error)
	MemberCodeTaken(ctx context.Context, code string) (bool, error)
	InsertLead(ctx context.Context, username, displayName, passwordHash string) (User, error)
	InsertMember(ctx context.Context, teamID int64, memberCode, username, displayName, passwordHash string) (User, error)
	UserWithHash(ctx context.Context, username string) (User, string, error)
	UserByID(ctx context.Context, id int64) (User, error)
	InsertTeam(ctx context.Context, leadID int64, teamCode string, memberCount int) (Team, error)
	TeamByCode(ctx context.Context, teamCode string) (Team, error)
	TeamMembers(ctx context.Context, teamID int64) ([]User, error)
}

var db Store

// UsePool hands the shared connection pool to this package. Called once
// by the server during startup.
func UsePool(p *pgxpool.Pool) {
	db = &PgxStore{pool: p}
}

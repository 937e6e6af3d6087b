// Package authmw implements cookie-backed session authentication.
// Sessions are HS256-signed JWTs minted locally at login, carrying the
// user id, username, role and team scope. Tokens have no expiry: a
// session lives until logout clears the cookie.
package authmw

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleLead   = "lead"
	RoleMember = "member"

	CookieName = "session"
)

var ErrInvalidSession = errors.New("invalid session")

// Session is the resolved actor of a request.
type Session struct {
	UserID   int64
	Username string
	Role     string
	TeamID   int64 // 0 when the user has no team yet
}

type sessionClaims struct {
	jwt.RegisteredClaims

	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	TeamID   int64  `json:"teamid"`
}

// SessionAuth mints and validates session tokens with a shared secret.
type SessionAuth struct {
	secret []byte
}

func NewSessionAuth(secret []byte) *SessionAuth {
	return &SessionAuth{secret: secret}
}

// Mint signs a session token for the given actor. No exp claim is set;
// sessions are destroyed only by logout.
func (a *SessionAuth) Mint(s Session) (string, error) {
	claims := sessionClaims{
		UserID:   s.UserID,
		Username: s.Username,
		Role:     s.Role,
		TeamID:   s.TeamID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(a.secret)
}

// Parse validates a token string and returns the session it carries.
func (a *SessionAuth) Parse(tokenStr string) (Session, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return Session{}, ErrInvalidSession
	}
	if claims.UserID <= 0 || (claims.Role != RoleLead && claims.Role != RoleMember) {
		return Session{}, ErrInvalidSession
	}

	return Session{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
		TeamID:   claims.TeamID,
	}, nil
}

// SetCookie attaches the session token to the response.
func (a *SessionAuth) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, 0, "/", "", false, true)
}

// ClearCookie destroys the session on the client.
func (a *SessionAuth) ClearCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

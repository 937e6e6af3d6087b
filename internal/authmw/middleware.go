package authmw

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session.actor"

// RequireRole rejects requests without a valid session (401) or whose
// role matches none of anyOf (403). The resolved session is placed into
// the gin context for handlers.
func (a *SessionAuth) RequireRole(anyOf ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := extractSessionToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})

			return
		}

		session, err := a.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})

			return
		}

		c.Set(sessionKey, session)

		if !hasAnyRole(session.Role, anyOf...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})

			return
		}

		c.Next()
	}
}

// OptionalSession resolves a session when one is present but never
// rejects the request. Used on routes that answer anonymous callers
// with an unscoped view.
func (a *SessionAuth) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, err := extractSessionToken(c); err == nil {
			if session, err := a.Parse(tokenStr); err == nil {
				c.Set(sessionKey, session)
			}
		}
		c.Next()
	}
}

// Actor returns the session resolved by the middleware, if any.
func Actor(c *gin.Context) (Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)

	return s, ok
}

// --- helpers ---

func extractSessionToken(c *gin.Context) (string, error) {
	// 1) session cookie
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie, nil
	}

	// 2) Authorization: Bearer <token>
	authz := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:]), nil
	}

	return "", errors.New("missing session token")
}

func hasAnyRole(role string, anyOf ...string) bool {
	for _, required := range anyOf {
		if role == required {
			return true
		}
	}

	return false
}

package identity

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"intertask/internal/authmw"
	"intertask/internal/logging"
	"intertask/internal/utils"
)

var sessions *authmw.SessionAuth

// RegisterRoutes wires the identity endpoints onto the engine.
func RegisterRoutes(engine *gin.Engine, auth *authmw.SessionAuth) {
	sessions = auth

	engine.POST("/lead-register", handleLeadRegister)
	engine.POST("/lead-login", handleLogin(authmw.RoleLead))
	engine.GET("/lead-logout", handleLogout)

	engine.POST("/member-join", handleMemberJoin)
	engine.POST("/member-login", handleLogin(authmw.RoleMember))
	engine.GET("/member-logout", handleLogout)

	engine.GET("/logout", handleLogout)
	engine.GET("/profile", auth.RequireRole(authmw.RoleLead, authmw.RoleMember), handleProfile)

	lead := engine.Group("/lead", auth.RequireRole(authmw.RoleLead))
	lead.POST("/create-team", handleCreateTeam)
}

func handleLeadRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})

		return
	}
	if !utils.IsAlphanumericPlus(req.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username"})

		return
	}

	user, err := RegisterLead(c.Request.Context(), req.Username, req.DisplayName, req.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})

			return
		}
		logging.Logger.Errorf("failed to register lead: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "ok", "user": user})
}

// handleLogin authenticates a username+password pair scoped to the
// expected role and issues the session cookie.
func handleLogin(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})

			return
		}

		user, err := Authenticate(c.Request.Context(), req.Username, req.Password, role)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})

				return
			}
			logging.Logger.Errorf("failed to load user for login: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

			return
		}

		issueSession(c, user)
		c.JSON(http.StatusOK, gin.H{"status": "ok", "user": user})
	}
}

func handleLogout(c *gin.Context) {
	sessions.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func handleCreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})

		return
	}

	actor, _ := authmw.Actor(c)

	team, codes, err := CreateTeam(c.Request.Context(), actor.UserID, req.MemberCount)
	if err != nil {
		if errors.Is(err, ErrLeadHasTeam) {
			c.JSON(http.StatusForbidden, gin.H{"error": "lead already owns a team"})

			return
		}
		logging.Logger.Errorf("failed to create team: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	// the session carries the team scope, so reissue it; a failed
	// reload leaves the old cookie in place until the next login
	user, err := db.UserByID(c.Request.Context(), actor.UserID)
	if err != nil {
		logging.Logger.Errorf("failed to reload lead %d after create-team, session not reissued: %v", actor.UserID, err)
	} else {
		issueSession(c, user)
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":       "ok",
		"team_code":    team.TeamCode,
		"member_codes": codes,
	})
}

func handleMemberJoin(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})

		return
	}
	if !utils.IsAlphanumericPlus(req.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username"})

		return
	}

	user, err := JoinTeam(c.Request.Context(), req.MemberCode, req.Username, req.DisplayName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidJoinCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid join code"})
		case errors.Is(err, ErrCodeAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{"error": "join code already used"})
		case errors.Is(err, ErrDuplicateUsername):
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		default:
			logging.Logger.Errorf("failed to join team: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		}

		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "ok", "user": user})
}

func handleProfile(c *gin.Context) {
	actor, ok := authmw.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})

		return
	}

	user, err := db.UserByID(c.Request.Context(), actor.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})

			return
		}
		logging.Logger.Errorf("failed to load profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})

		return
	}

	resp := gin.H{"user": user}
	// leads get their team roster alongside the profile
	if user.Role == authmw.RoleLead && user.TeamID != 0 {
		members, err := db.TeamMembers(c.Request.Context(), user.TeamID)
		if err != nil {
			logging.Logger.Errorf("failed to list team members: %v", err)
		} else {
			resp["members"] = members
		}
	}

	c.JSON(http.StatusOK, resp)
}

func issueSession(c *gin.Context, user User) {
	token, err := sessions.Mint(authmw.Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		TeamID:   user.TeamID,
	})
	if err != nil {
		logging.Logger.Errorf("failed to mint session: %v", err)

		return
	}
	sessions.SetCookie(c, token)
}

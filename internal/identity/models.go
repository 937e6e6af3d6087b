// Package identity owns users, teams, join codes and the login flow.
package identity

import (
	"errors"
	"time"
)

var (
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidJoinCode    = errors.New("invalid join code")
	ErrCodeAlreadyUsed    = errors.New("join code already used")
	ErrLeadHasTeam        = errors.New("lead already owns a team")
)

type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	TeamID      int64     `json:"team_id,omitempty"`
	MemberCode  string    `json:"member_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Team struct {
	ID          int64     `json:"id"`
	TeamCode    string    `json:"team_code"`
	LeadID      int64     `json:"lead_id"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Username    string `json:"username" form:"username" binding:"required,min=2,max=64"`
	DisplayName string `json:"display_name" form:"display_name" binding:"required,max=128"`
	Password    string `json:"password" form:"password" binding:"required,min=4,max=128"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type CreateTeamRequest struct {
	MemberCount int `json:"member_count" form:"member_count" binding:"required,gt=0,lte=99"`
}

type JoinRequest struct {
	MemberCode  string `json:"member_code" form:"member_code" binding:"required"`
	Username    string `json:"username" form:"username" binding:"required,min=2,max=64"`
	DisplayName string `json:"display_name" form:"display_name" binding:"required,max=128"`
	Password    string `json:"password" form:"password" binding:"required,min=4,max=128"`
}

package domain

import (
	"errors"
	"time"
)

// Capability is one permitted operation. Roles are modeled as capability
// sets checked through a single gate per route, not as integer bitmasks.
type Capability string

const (
	CapViewCalendar  Capability = "view_calendar"
	CapCreateProject Capability = "create_project"
	CapEditProject   Capability = "edit_project"
	CapDeleteProject Capability = "delete_project"
	CapManageUsers   Capability = "manage_users"
)

type CapabilitySet map[Capability]struct{}

func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

const (
	RoleAdmin          = "admin"
	RoleProjectManager = "project_manager"
	RoleViewer         = "viewer"
)

var roleCapabilities = map[string]CapabilitySet{
	RoleAdmin: NewCapabilitySet(
		CapViewCalendar, CapCreateProject, CapEditProject, CapDeleteProject, CapManageUsers,
	),
	RoleProjectManager: NewCapabilitySet(
		CapViewCalendar, CapCreateProject, CapEditProject, CapDeleteProject,
	),
	RoleViewer: NewCapabilitySet(CapViewCalendar),
}

// RoleCapabilities returns the capability set for a role name; unknown
// roles get an empty set.
func RoleCapabilities(role string) CapabilitySet {
	if caps, ok := roleCapabilities[role]; ok {
		return caps
	}
	return CapabilitySet{}
}

func ValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Active       bool   `json:"active"`
}

func (u *User) Can(c Capability) bool {
	return RoleCapabilities(u.Role).Has(c)
}

// Invitation is a single-use signup code bound to an email and role.
type Invitation struct {
	ID        int64      `json:"id"`
	Code      string     `json:"code"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	Used      bool       `json:"used"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

func (i *Invitation) Valid(now time.Time) bool {
	return !i.Used && now.Before(i.ExpiresAt)
}

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvitationInvalid  = errors.New("invitation code is invalid or expired")
	ErrInvalidRole        = errors.New("unknown role")
)

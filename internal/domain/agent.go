package domain

import (
	"fmt"
	"strings"
	"time"
)

type AgentStatus string

const (
	AgentStatusActive    AgentStatus = "active"
	AgentStatusStarting  AgentStatus = "starting"
	AgentStatusSuspended AgentStatus = "suspended"
	AgentStatusInactive  AgentStatus = "inactive"
)

func (s AgentStatus) Valid() bool {
	switch s {
	case AgentStatusActive, AgentStatusStarting, AgentStatusSuspended, AgentStatusInactive:
		return true
	default:
		return false
	}
}

// CanTransition reports whether the lifecycle allows moving from s to next.
// Starting may fall back to suspended when a rehydrate attempt fails.
func (s AgentStatus) CanTransition(next AgentStatus) bool {
	switch s {
	case AgentStatusActive:
		return next == AgentStatusSuspended
	case AgentStatusSuspended:
		return next == AgentStatusStarting || next == AgentStatusInactive
	case AgentStatusStarting:
		return next == AgentStatusActive || next == AgentStatusSuspended
	default:
		return false
	}
}

type Role string

type RoleSet map[Role]struct{}

func NewRoleSet(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		trimmed := strings.TrimSpace(strings.ToLower(role))
		if trimmed == "" {
			continue
		}
		set[Role(trimmed)] = struct{}{}
	}
	return set
}

func (s RoleSet) Contains(role Role) bool {
	_, ok := s[Role(strings.TrimSpace(strings.ToLower(string(role))))]
	return ok
}

type SuspendedAgentInfo struct {
	SessionName       string
	TeamID            string
	MemberID          string
	Role              Role
	ContinuationToken string
	SuspendedAt       time.Time
}

func (i SuspendedAgentInfo) HasContinuationToken() bool {
	return strings.TrimSpace(i.ContinuationToken) != ""
}

type Member struct {
	ID          string
	Name        string
	TeamID      string
	Role        Role
	SessionName string
	Status      AgentStatus
}

func (m Member) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("member id is required")
	}
	if strings.TrimSpace(m.SessionName) == "" {
		return fmt.Errorf("member %s: session name is required", m.ID)
	}
	if m.Status != "" && !m.Status.Valid() {
		return fmt.Errorf("member %s: unsupported status %q", m.ID, m.Status)
	}

	return nil
}

type StatusBroadcast struct {
	TeamID      string
	MemberID    string
	SessionName string
	AgentStatus AgentStatus
}

type RegistrationRequest struct {
	SessionName string
	Role        Role
	TeamID      string
	MemberID    string
}

type RegistrationResult struct {
	Success bool
	Error   string
}

type TokenMetadata struct {
	SessionName string
	TeamID      string
	MemberID    string
	Role        Role
	UpdatedAt   time.Time
}

// AgentRef identifies a team member by its session.
type AgentRef struct {
	SessionName string
	TeamID      string
	MemberID    string
	Role        Role
	// Status is the roster status; empty means active.
	Status AgentStatus
}

func (r AgentRef) Validate() error {
	if strings.TrimSpace(r.SessionName) == "" {
		return fmt.Errorf("%w: session name is required", ErrValidation)
	}
	return nil
}

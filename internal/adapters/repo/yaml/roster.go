// Package yaml keeps the team roster in a human-editable teams.yaml file.
package yaml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/agent-crew/internal/config"
	"github.com/bnema/agent-crew/internal/domain"
	"github.com/bnema/agent-crew/internal/events"
	"github.com/bnema/agent-crew/internal/ports"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	currentRosterVersion = 1
	rosterFileMode       = 0o600
	rosterDirMode        = 0o700
)

type rosterFile struct {
	Version int          `yaml:"version"`
	Teams   []teamSchema `yaml:"teams"`
}

type teamSchema struct {
	ID      string         `yaml:"id"`
	Name    string         `yaml:"name,omitempty"`
	Members []memberSchema `yaml:"members"`
}

type memberSchema struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name,omitempty"`
	Role    string `yaml:"role"`
	Session string `yaml:"session"`
	Status  string `yaml:"status,omitempty"`
}

// Roster resolves members by session and records their lifecycle status.
type Roster struct {
	path   string
	events ports.EventPublisher

	mu sync.RWMutex
}

var (
	_ ports.MemberDirectory   = (*Roster)(nil)
	_ ports.StatusBroadcaster = (*Roster)(nil)
)

// NewRoster opens the roster named by roster.path. Status broadcasts go to
// publisher, which may be nil.
func NewRoster(cfg *viper.Viper, publisher ports.EventPublisher) (*Roster, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%s is not configured", config.KeyRosterPath)
	}

	path := strings.TrimSpace(cfg.GetString(config.KeyRosterPath))
	if path == "" {
		return nil, fmt.Errorf("%s is not configured", config.KeyRosterPath)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve roster path: %w", err)
	}

	return &Roster{path: filepath.Clean(absPath), events: publisher}, nil
}

func (r *Roster) FindMemberBySession(ctx context.Context, sessionName string) (domain.Member, error) {
	if err := ctx.Err(); err != nil {
		return domain.Member{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.read()
	if err != nil {
		return domain.Member{}, err
	}

	for _, team := range file.Teams {
		for _, member := range team.Members {
			if member.Session == sessionName {
				return toMember(team.ID, member), nil
			}
		}
	}

	return domain.Member{}, fmt.Errorf("session %q: %w", sessionName, domain.ErrMemberNotFound)
}

// Members lists every member across all teams in file order.
func (r *Roster) Members(ctx context.Context) ([]domain.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.read()
	if err != nil {
		return nil, err
	}

	var members []domain.Member
	for _, team := range file.Teams {
		for _, member := range team.Members {
			members = append(members, toMember(team.ID, member))
		}
	}
	return members, nil
}

// AddMember inserts or replaces a member of teamID, creating the team when
// needed.
func (r *Roster) AddMember(ctx context.Context, member domain.Member) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := member.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if strings.TrimSpace(member.TeamID) == "" {
		return fmt.Errorf("%w: team id is required", domain.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.read()
	if err != nil {
		return err
	}

	encoded := memberSchema{
		ID:      member.ID,
		Name:    member.Name,
		Role:    string(member.Role),
		Session: member.SessionName,
		Status:  string(member.Status),
	}

	teamIndex := -1
	for i := range file.Teams {
		if file.Teams[i].ID == member.TeamID {
			teamIndex = i
			break
		}
	}
	if teamIndex < 0 {
		file.Teams = append(file.Teams, teamSchema{ID: member.TeamID})
		teamIndex = len(file.Teams) - 1
	}

	team := &file.Teams[teamIndex]
	for i := range team.Members {
		if team.Members[i].ID == member.ID {
			team.Members[i] = encoded
			return r.write(file)
		}
	}
	team.Members = append(team.Members, encoded)

	return r.write(file)
}

func (r *Roster) UpdateAgentStatus(ctx context.Context, sessionName string, status domain.AgentStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unsupported status %q", domain.ErrValidation, status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.read()
	if err != nil {
		return err
	}

	for ti := range file.Teams {
		for mi := range file.Teams[ti].Members {
			if file.Teams[ti].Members[mi].Session == sessionName {
				file.Teams[ti].Members[mi].Status = string(status)
				return r.write(file)
			}
		}
	}

	return fmt.Errorf("session %q: %w", sessionName, domain.ErrMemberNotFound)
}

// BroadcastStatus publishes an agent_status event.
func (r *Roster) BroadcastStatus(ctx context.Context, update domain.StatusBroadcast) error {
	if r.events == nil {
		return nil
	}

	r.events.Emit(ctx, string(events.EventAgentStatus), map[string]any{
		"teamId":      update.TeamID,
		"memberId":    update.MemberID,
		"sessionName": update.SessionName,
		"agentStatus": string(update.AgentStatus),
	})
	return nil
}

func (r *Roster) read() (rosterFile, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return rosterFile{Version: currentRosterVersion}, nil
		}
		return rosterFile{}, fmt.Errorf("read roster: %w", err)
	}

	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return rosterFile{}, fmt.Errorf("decode roster: %w", err)
	}
	if file.Version == 0 {
		file.Version = currentRosterVersion
	}
	if file.Version > currentRosterVersion {
		return rosterFile{}, fmt.Errorf("unsupported roster version %d (current %d)", file.Version, currentRosterVersion)
	}

	return file, nil
}

func (r *Roster) write(file rosterFile) error {
	if err := os.MkdirAll(filepath.Dir(r.path), rosterDirMode); err != nil {
		return fmt.Errorf("create roster directory: %w", err)
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}

	temp, err := os.CreateTemp(filepath.Dir(r.path), ".teams-*.yaml.tmp")
	if err != nil {
		return fmt.Errorf("create temp roster: %w", err)
	}
	tempName := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempName)
		return fmt.Errorf("write temp roster: %w", err)
	}
	if err := temp.Chmod(rosterFileMode); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempName)
		return fmt.Errorf("chmod temp roster: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempName)
		return fmt.Errorf("close temp roster: %w", err)
	}
	if err := os.Rename(tempName, r.path); err != nil {
		_ = os.Remove(tempName)
		return fmt.Errorf("replace roster: %w", err)
	}

	return nil
}

func toMember(teamID string, schema memberSchema) domain.Member {
	status := domain.AgentStatus(schema.Status)
	if status == "" {
		status = domain.AgentStatusInactive
	}

	return domain.Member{
		ID:          schema.ID,
		Name:        schema.Name,
		TeamID:      teamID,
		Role:        domain.Role(schema.Role),
		SessionName: schema.Session,
		Status:      status,
	}
}

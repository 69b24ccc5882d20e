package toml

import "fmt"

const (
	currentTokensSchemaVersion    = 1
	currentSuspendedSchemaVersion = 1
)

type tokensFileSchema struct {
	Version int           `toml:"version"`
	Tokens  []tokenSchema `toml:"tokens"`
}

func (s *tokensFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentTokensSchemaVersion
	}
}

func (s tokensFileSchema) validateVersion() error {
	if s.Version > currentTokensSchemaVersion {
		return fmt.Errorf("unsupported continuation schema version %d (current %d)", s.Version, currentTokensSchemaVersion)
	}

	return nil
}

type tokenSchema struct {
	SessionName string `toml:"session"`
	Token       string `toml:"token"`
	TeamID      string `toml:"team_id,omitempty"`
	MemberID    string `toml:"member_id,omitempty"`
	Role        string `toml:"role,omitempty"`
	UpdatedAt   string `toml:"updated_at"`
}

type suspendedFileSchema struct {
	Version int                    `toml:"version"`
	Agents  []suspendedAgentSchema `toml:"agents"`
}

func (s *suspendedFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSuspendedSchemaVersion
	}
}

func (s suspendedFileSchema) validateVersion() error {
	if s.Version > currentSuspendedSchemaVersion {
		return fmt.Errorf("unsupported suspended schema version %d (current %d)", s.Version, currentSuspendedSchemaVersion)
	}

	return nil
}

type suspendedAgentSchema struct {
	SessionName       string `toml:"session"`
	TeamID            string `toml:"team_id"`
	MemberID          string `toml:"member_id"`
	Role              string `toml:"role"`
	ContinuationToken string `toml:"continuation_token,omitempty"`
	SuspendedAt       string `toml:"suspended_at"`
}

// mailboxFileSchema carries its version through unchanged; the mailbox
// decides what to do with versions it does not know.
type mailboxFileSchema struct {
	Version        int             `toml:"version"`
	SavedAt        string          `toml:"saved_at"`
	TotalProcessed int             `toml:"total_processed"`
	TotalFailed    int             `toml:"total_failed"`
	CurrentMessage *messageSchema  `toml:"current_message,omitempty"`
	Queue          []messageSchema `toml:"queue"`
	History        []messageSchema `toml:"history"`
}

type messageSchema struct {
	ID                  string         `toml:"id"`
	Content             string         `toml:"content"`
	ConversationID      string         `toml:"conversation_id"`
	Source              string         `toml:"source"`
	SourceMetadata      map[string]any `toml:"source_metadata,omitempty"`
	Status              string         `toml:"status"`
	EnqueuedAt          string         `toml:"enqueued_at"`
	ProcessingStartedAt string         `toml:"processing_started_at,omitempty"`
	CompletedAt         string         `toml:"completed_at,omitempty"`
	Response            string         `toml:"response,omitempty"`
	Error               string         `toml:"error,omitempty"`
	RetryCount          int            `toml:"retry_count,omitempty"`
}

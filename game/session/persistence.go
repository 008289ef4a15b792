package session

import (
	"time"

	"github.com/wricardo/tgames/game/engine"
	"github.com/wricardo/tgames/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData represents the JSON structure for persisted sessions.
// BoardConfig is a fallback for when ConfigName no longer resolves.
type PersistedSessionData struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	BoardState     *engine.BoardState  `json:"board_state"`
	BoardConfig    *engine.BoardConfig `json:"board_config,omitempty"`
}

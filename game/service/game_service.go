package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wricardo/tgames/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
)

// GameService defines all board-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Piece Operations
	Place(ctx context.Context, sessionID, loc, piece string, stack bool) (*MoveResult, error)
	Remove(ctx context.Context, sessionID, loc, piece string) (*MoveResult, error)
	Move(ctx context.Context, sessionID string, req engine.MoveRequest, reset bool) (*MoveResult, error)
	SafeDisplace(ctx context.Context, sessionID string, req engine.MoveRequest) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []engine.MoveRequest, reset bool) (*BulkMoveResult, error)
	Clear(ctx context.Context, sessionID string) (*engine.BoardState, error)
	Reset(ctx context.Context, sessionID string) (*engine.BoardState, error)

	// Queries
	GetBoardState(ctx context.Context, sessionID string) (*engine.BoardState, error)
	Offset(ctx context.Context, sessionID, loc, delta string) (*engine.CellState, error)
	Neighbors(ctx context.Context, sessionID, loc string, diagonal bool) ([]string, error)
	Preview(ctx context.Context, sessionID string, req engine.MoveRequest) (*engine.MovePreview, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.BoardConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.BoardConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.BoardConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.BoardConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles board configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.BoardConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.BoardConfig
	SaveConfig(name string, config *engine.BoardConfig) error
}

// Session represents an active board session
type Session struct {
	ID             string
	Engine         *engine.BoardEngine
	Config         *engine.BoardConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

func trimJSON(name string) string {
	return strings.TrimSuffix(name, ".json")
}

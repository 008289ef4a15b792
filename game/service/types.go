package service

import (
	"time"

	"github.com/wricardo/tgames/game/engine"
)

// SessionInfo provides information about a board session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	BoardState     *engine.BoardState  `json:"board_state"`
	BoardConfig    *engine.BoardConfig `json:"board_config"`
}

// MoveResult contains the result of a single board operation
type MoveResult struct {
	Success    bool               `json:"success"`
	BoardState *engine.BoardState `json:"board_state"`
	Message    string             `json:"message"`
	Captured   []string           `json:"captured,omitempty"`
	Events     []BoardEvent       `json:"events,omitempty"`
	Record     *engine.MoveRecord `json:"record,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	MovesExecuted  int                 `json:"moves_executed"`
	RequestedMoves int                 `json:"requested_moves"`
	Success        bool                `json:"success"`
	BoardState     *engine.BoardState  `json:"board_state"`
	Events         []BoardEvent        `json:"events"`
	Records        []engine.MoveRecord `json:"records"`
	Captured       []string            `json:"captured,omitempty"`
	StoppedReason  string              `json:"stopped_reason,omitempty"`
	StopReasonCode string              `json:"stop_reason_code,omitempty"` // blocked_unsafe|empty_cell|piece_not_found|unknown_location|invalid_location|error
	StoppedOnMove  int                 `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Message        string              `json:"message,omitempty"`
}

// BoardEvent represents something that happened on the board
type BoardEvent struct {
	Type      string    `json:"type"` // "place", "stack", "remove", "move", "capture", "blocked", "clear", "reset"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location,omitempty"`
	Pieces    []string  `json:"pieces,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveRecord `json:"moves"`
	TotalMoves  int                 `json:"total_moves"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a board configuration
type ConfigInfo struct {
	Filename    string           `json:"filename"`
	ConfigID    string           `json:"config_id"` // The identifier to use for session creation
	Name        string           `json:"name"`      // Display name
	Description string           `json:"description"`
	Kind        engine.BoardKind `json:"kind"`
	CellCount   int              `json:"cell_count"`
	CellType    engine.CellType  `json:"cell_type"`
	MoveRule    engine.MoveRule  `json:"move_rule"`
	ExtraCells  []string         `json:"extra_cells,omitempty"`
}

// NewConfigInfo summarizes a config stored under filename
func NewConfigInfo(filename string, config *engine.BoardConfig) *ConfigInfo {
	return &ConfigInfo{
		Filename:    filename,
		ConfigID:    trimJSON(filename),
		Name:        config.Name,
		Description: config.Description,
		Kind:        config.Kind,
		CellCount:   config.CellCount(),
		CellType:    config.ResolvedCellType(),
		MoveRule:    config.ResolvedMoveRule(),
		ExtraCells:  config.ExtraCells,
	}
}

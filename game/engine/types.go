package engine

// BoardKind selects the board family a config builds
type BoardKind string

const (
	KindGrid  BoardKind = "grid"
	KindLine  BoardKind = "line"
	KindStack BoardKind = "stack"
)

// CellType selects how many pieces a cell holds
type CellType string

const (
	SingleCell CellType = "single"
	MultiCell  CellType = "multi"
)

// MoveRule selects the capture rule used by Move
type MoveRule string

const (
	RuleDisplace     MoveRule = "displace"
	RuleSafeDisplace MoveRule = "safe_displace"
	RuleStack        MoveRule = "stack"
)

// Action names recorded in move history
const (
	ActionPlace        = "place"
	ActionStack        = "stack"
	ActionRemove       = "remove"
	ActionMove         = "move"
	ActionDisplace     = "displace"
	ActionSafeDisplace = "safe_displace"
	ActionClear        = "clear"
)

const (
	// Validation constants
	MaxDimensions       = 4
	MaxAxisSize         = 50
	MaxLineLength       = 500
	MaxCells            = 2500
	MaxExtraCells       = 16
	MaxBulkMoves        = 50
	WebSocketBufferSize = 256
)

// Placement puts pieces in a cell when a board is set up
type Placement struct {
	Location string   `json:"location"`
	Pieces   []string `json:"pieces"`
}

// BoardConfig describes a board layout loaded from JSON
type BoardConfig struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Kind        BoardKind   `json:"kind"`
	Dimensions  []int       `json:"dimensions,omitempty"`
	Length      int         `json:"length,omitempty"`
	CellType    CellType    `json:"cell_type,omitempty"`
	ExtraCells  []string    `json:"extra_cells,omitempty"`
	MoveRule    MoveRule    `json:"move_rule,omitempty"`
	Setup       []Placement `json:"setup,omitempty"`
	Messages    struct {
		Welcome  string `json:"welcome"`
		Moved    string `json:"moved"`
		Captured string `json:"captured"`
		Blocked  string `json:"blocked"`
	} `json:"messages"`
}

// CellState is one cell of a board snapshot
type CellState struct {
	Location string   `json:"location"`
	Pieces   []string `json:"pieces"`
	Extra    bool     `json:"extra,omitempty"`
}

// BoardState is a JSON snapshot of a board and its history
type BoardState struct {
	ConfigName string      `json:"config_name"`
	Kind       BoardKind   `json:"kind"`
	Dimensions []int       `json:"dimensions,omitempty"`
	Length     int         `json:"length,omitempty"`
	CellType   CellType    `json:"cell_type"`
	MoveRule   MoveRule    `json:"move_rule"`
	Cells      []CellState `json:"cells"`
	PieceCount int         `json:"piece_count"`
	Captured   []string    `json:"captured"`
	Message    string      `json:"message"`

	MoveHistory []MoveRecord `json:"move_history"`
	TotalMoves  int          `json:"total_moves"`

	// CurrentMoves holds only the moves since the last reset. MoveHistory
	// stays cumulative.
	CurrentMoves      []MoveRecord `json:"current_moves"`
	CurrentMovesCount int          `json:"current_moves_count"`
}

// MoveRecord is a single entry in the move history
type MoveRecord struct {
	ID         string   `json:"id"`
	Action     string   `json:"action"`
	From       string   `json:"from,omitempty"`
	To         string   `json:"to,omitempty"`
	Piece      string   `json:"piece,omitempty"`
	Captured   []string `json:"captured,omitempty"`
	Success    bool     `json:"success"`
	Error      string   `json:"error,omitempty"`
	MoveNumber int      `json:"move_number"`
	Timestamp  int64    `json:"timestamp"`
}

// MoveRequest is one step of a bulk move
type MoveRequest struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Piece string `json:"piece,omitempty"`
}

// MovePreview reports what a move would do without doing it
type MovePreview struct {
	From     string      `json:"from"`
	To       string      `json:"to"`
	Piece    string      `json:"piece,omitempty"`
	Legal    bool        `json:"legal"`
	Reason   string      `json:"reason,omitempty"`
	Captured []string    `json:"captured,omitempty"`
	After    []CellState `json:"after,omitempty"`
}

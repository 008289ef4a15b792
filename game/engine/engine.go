package engine

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrPieceRequired = errors.New("piece is required")
	ErrStateMismatch = errors.New("state does not match config")
	ErrTooManyMoves  = errors.New("too many moves")
)

// Engine provides the main interface for board operations
type Engine interface {
	// State management
	GetState() *BoardState
	SetState(state *BoardState) error
	Reset() *BoardState

	// Piece operations
	Place(loc, piece string) error
	Stack(loc, piece string) ([]string, error)
	Remove(loc, piece string) (string, error)
	Clear()

	// Moves
	Move(from, to, piece string) ([]string, error)
	Displace(from, to, piece string) ([]string, error)
	SafeDisplace(from, to, piece string) ([]string, error)
	BulkMove(moves []MoveRequest) ([]MoveRecord, error)
	Preview(from, to, piece string) (*MovePreview, error)

	// Queries
	Cell(loc string) (*CellState, error)
	Offset(loc, delta string) (*CellState, error)
	Neighbors(loc string, diagonal bool) ([]string, error)
	Safe(loc, piece string) (bool, error)

	// Configuration
	GetConfig() *BoardConfig
	SetConfig(config *BoardConfig) error

	// History
	GetMoveHistory() []MoveRecord
	GetLastMove() *MoveRecord
}

// BoardEngine implements Engine over a board built from a BoardConfig
type BoardEngine struct {
	config  *BoardConfig
	board   surface
	message string

	captured     []string
	history      []MoveRecord
	currentMoves []MoveRecord
}

// NewEngine creates a board engine with the provided configuration
func NewEngine(config *BoardConfig) (*BoardEngine, error) {
	if err := ValidateBoardConfig(config); err != nil {
		return nil, err
	}

	e := &BoardEngine{config: config}
	if err := e.rebuild(true); err != nil {
		return nil, err
	}
	return e, nil
}

// NewEngineWithDefaults creates a board engine on the built-in default board
func NewEngineWithDefaults() *BoardEngine {
	e, err := NewEngine(DefaultBoardConfig())
	if err != nil {
		panic(fmt.Sprintf("engine: default config is invalid: %v", err))
	}
	return e
}

// rebuild replaces the board with a fresh one, optionally applying setup
func (e *BoardEngine) rebuild(withSetup bool) error {
	s, err := buildSurface(e.config)
	if err != nil {
		return err
	}
	if withSetup {
		for _, p := range e.config.Setup {
			if err := s.fill(p.Location, p.Pieces); err != nil {
				return fmt.Errorf("setup %s: %w", p.Location, err)
			}
		}
	}
	e.board = s
	e.captured = nil
	e.message = e.config.Messages.Welcome
	return nil
}

// GetState returns a snapshot of the board and its history
func (e *BoardEngine) GetState() *BoardState {
	state := &BoardState{
		ConfigName:        e.config.Name,
		Kind:              e.config.Kind,
		Dimensions:        slices.Clone(e.config.Dimensions),
		Length:            e.config.Length,
		CellType:          e.config.ResolvedCellType(),
		MoveRule:          e.config.ResolvedMoveRule(),
		Cells:             e.cells(),
		Captured:          slices.Clone(e.captured),
		Message:           e.message,
		MoveHistory:       slices.Clone(e.history),
		TotalMoves:        len(e.history),
		CurrentMoves:      slices.Clone(e.currentMoves),
		CurrentMovesCount: len(e.currentMoves),
	}
	for _, c := range state.Cells {
		state.PieceCount += len(c.Pieces)
	}
	if state.Captured == nil {
		state.Captured = []string{}
	}
	if state.MoveHistory == nil {
		state.MoveHistory = []MoveRecord{}
	}
	if state.CurrentMoves == nil {
		state.CurrentMoves = []MoveRecord{}
	}
	return state
}

func (e *BoardEngine) cells() []CellState {
	locs := e.board.locations()
	out := make([]CellState, 0, len(locs))
	for _, loc := range locs {
		c, err := e.board.cell(loc)
		if err != nil {
			continue
		}
		if c.Pieces == nil {
			c.Pieces = []string{}
		}
		out = append(out, c)
	}
	return out
}

// SetState restores a snapshot (used for persistence loading)
func (e *BoardEngine) SetState(state *BoardState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.ConfigName != e.config.Name {
		return fmt.Errorf("%w: state is for '%s', engine runs '%s'", ErrStateMismatch, state.ConfigName, e.config.Name)
	}

	s, err := buildSurface(e.config)
	if err != nil {
		return err
	}
	for _, c := range state.Cells {
		if err := s.fill(c.Location, c.Pieces); err != nil {
			return fmt.Errorf("%w: cell %s: %w", ErrStateMismatch, c.Location, err)
		}
	}

	e.board = s
	e.message = state.Message
	e.captured = slices.Clone(state.Captured)
	e.history = slices.Clone(state.MoveHistory)
	e.currentMoves = slices.Clone(state.CurrentMoves)
	return nil
}

// Reset restores the configured setup. Cumulative history survives.
func (e *BoardEngine) Reset() *BoardState {
	if err := e.rebuild(true); err != nil {
		// The config was validated with this exact setup.
		panic(fmt.Sprintf("engine: rebuilding validated board: %v", err))
	}
	e.currentMoves = nil
	return e.GetState()
}

// Place clears a cell and puts a piece in it. Stack boards append instead.
func (e *BoardEngine) Place(loc, piece string) error {
	if piece == "" {
		return ErrPieceRequired
	}
	err := e.board.place(loc, piece)
	e.record(ActionPlace, "", loc, piece, nil, err)
	return err
}

// Stack adds a piece to a cell without clearing it
func (e *BoardEngine) Stack(loc, piece string) ([]string, error) {
	if piece == "" {
		return nil, ErrPieceRequired
	}
	pushed, err := e.board.stack(loc, piece)
	e.record(ActionStack, "", loc, piece, pushed, err)
	return pushed, err
}

// Remove takes a piece out of a cell. An empty piece removes the top one.
func (e *BoardEngine) Remove(loc, piece string) (string, error) {
	removed, err := e.board.remove(loc, pieceArg(piece)...)
	e.record(ActionRemove, loc, "", removed, nil, err)
	return removed, err
}

// Clear removes every piece from the board
func (e *BoardEngine) Clear() {
	e.board.clear()
	e.record(ActionClear, "", "", "", nil, nil)
}

// Cell returns one cell of the board
func (e *BoardEngine) Cell(loc string) (*CellState, error) {
	c, err := e.board.cell(loc)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Offset returns the cell at loc shifted by delta
func (e *BoardEngine) Offset(loc, delta string) (*CellState, error) {
	target, err := e.board.offset(loc, delta)
	if err != nil {
		return nil, err
	}
	return e.Cell(target)
}

// Neighbors returns the locations next to loc
func (e *BoardEngine) Neighbors(loc string, diagonal bool) ([]string, error) {
	return e.board.neighbors(loc, diagonal)
}

// Safe reports whether loc is protected from capture by piece
func (e *BoardEngine) Safe(loc, piece string) (bool, error) {
	if piece == "" {
		return false, ErrPieceRequired
	}
	return e.board.safe(loc, piece)
}

// GetConfig returns the current board configuration
func (e *BoardEngine) GetConfig() *BoardConfig {
	return e.config
}

// SetConfig sets a new board configuration and rebuilds the board
func (e *BoardEngine) SetConfig(config *BoardConfig) error {
	if err := ValidateBoardConfig(config); err != nil {
		return err
	}

	prev := e.config
	e.config = config
	if err := e.rebuild(true); err != nil {
		e.config = prev
		return err
	}
	e.currentMoves = nil
	return nil
}

// GetMoveHistory returns the complete move history
func (e *BoardEngine) GetMoveHistory() []MoveRecord {
	return slices.Clone(e.history)
}

// GetLastMove returns the last move made, or nil if no moves
func (e *BoardEngine) GetLastMove() *MoveRecord {
	if len(e.history) == 0 {
		return nil
	}
	last := e.history[len(e.history)-1]
	return &last
}

// String describes the underlying board, e.g. "<DimBoard with 8x8 SingleCells>"
func (e *BoardEngine) String() string {
	return e.board.String()
}

func pieceArg(piece string) []string {
	if piece == "" {
		return nil
	}
	return []string{piece}
}

package engine

import (
	"errors"
	"slices"
	"testing"

	"github.com/wricardo/tgames/board"
)

func createTestEngine(t *testing.T, config *BoardConfig) *BoardEngine {
	t.Helper()
	e, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return e
}

func cellPieces(t *testing.T, e *BoardEngine, loc string) []string {
	t.Helper()
	c, err := e.Cell(loc)
	if err != nil {
		t.Fatalf("Failed to get cell %s: %v", loc, err)
	}
	return c.Pieces
}

func TestNewEngine(t *testing.T) {
	config := createValidConfig()
	e := createTestEngine(t, config)

	state := e.GetState()
	if state.ConfigName != config.Name {
		t.Errorf("Expected config name %s, got %s", config.Name, state.ConfigName)
	}
	if len(state.Cells) != 9 {
		t.Errorf("Expected 9 cells, got %d", len(state.Cells))
	}
	if state.PieceCount != 2 {
		t.Errorf("Expected 2 pieces from setup, got %d", state.PieceCount)
	}
	if state.Message != "Welcome!" {
		t.Errorf("Expected welcome message, got %s", state.Message)
	}
	if state.CellType != SingleCell || state.MoveRule != RuleDisplace {
		t.Errorf("Expected resolved single/displace, got %s/%s", state.CellType, state.MoveRule)
	}
	if e.String() != "<DimBoard with 3x3 SingleCells>" {
		t.Errorf("Expected board description, got %s", e.String())
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createValidConfig()
	config.Name = ""

	if _, err := NewEngine(config); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	e := NewEngineWithDefaults()
	state := e.GetState()
	if len(state.Cells) != 64 {
		t.Errorf("Expected 64 cells, got %d", len(state.Cells))
	}
	if state.PieceCount != 16 {
		t.Errorf("Expected 16 pieces, got %d", state.PieceCount)
	}
}

func TestEngine_PlaceAndRemove(t *testing.T) {
	e := createTestEngine(t, createValidConfig())

	if err := e.Place("2,2", "q"); err != nil {
		t.Fatalf("Failed to place: %v", err)
	}
	if got := cellPieces(t, e, "2,2"); !slices.Equal(got, []string{"q"}) {
		t.Errorf("Expected [q], got %v", got)
	}
	if err := e.Place("2,2", "k"); err != nil {
		t.Fatalf("Failed to place: %v", err)
	}
	if got := cellPieces(t, e, "2,2"); !slices.Equal(got, []string{"k"}) {
		t.Errorf("Expected place to overwrite, got %v", got)
	}

	removed, err := e.Remove("2,2", "")
	if err != nil || removed != "k" {
		t.Errorf("Expected to remove k, got %s (%v)", removed, err)
	}
	if _, err := e.Remove("2,2", ""); !errors.Is(err, board.ErrEmptyCell) {
		t.Errorf("Expected ErrEmptyCell, got %v", err)
	}

	if err := e.Place("9,9", "q"); !errors.Is(err, board.ErrLocationNotFound) {
		t.Errorf("Expected ErrLocationNotFound, got %v", err)
	}
	if err := e.Place("2,2", ""); !errors.Is(err, ErrPieceRequired) {
		t.Errorf("Expected ErrPieceRequired, got %v", err)
	}
}

func TestEngine_Stack(t *testing.T) {
	e := createTestEngine(t, createLineConfig())
	pushed, err := e.Stack("1", "o")
	if err != nil {
		t.Fatalf("Failed to stack: %v", err)
	}
	if len(pushed) != 0 {
		t.Errorf("Expected nothing pushed out of a stack, got %v", pushed)
	}
	if got := cellPieces(t, e, "1"); !slices.Equal(got, []string{"o", "o", "o"}) {
		t.Errorf("Expected [o o o], got %v", got)
	}
}

func TestEngine_Clear(t *testing.T) {
	e := createTestEngine(t, createValidConfig())
	e.Clear()
	if e.GetState().PieceCount != 0 {
		t.Errorf("Expected empty board, got %d pieces", e.GetState().PieceCount)
	}
	last := e.GetLastMove()
	if last == nil || last.Action != ActionClear {
		t.Errorf("Expected clear recorded, got %+v", last)
	}
}

func TestEngine_Reset(t *testing.T) {
	e := createTestEngine(t, createValidConfig())
	e.Move("1,1", "2,1", "")
	e.Place("2,2", "q")

	state := e.Reset()
	if state.PieceCount != 2 {
		t.Errorf("Expected setup restored with 2 pieces, got %d", state.PieceCount)
	}
	if got := cellPieces(t, e, "1,1"); !slices.Equal(got, []string{"w"}) {
		t.Errorf("Expected w back at 1,1, got %v", got)
	}
	if state.TotalMoves != 2 {
		t.Errorf("Expected cumulative history to survive reset, got %d moves", state.TotalMoves)
	}
	if state.CurrentMovesCount != 0 || len(state.CurrentMoves) != 0 {
		t.Errorf("Expected current moves cleared, got %d", state.CurrentMovesCount)
	}
}

func TestEngine_Queries(t *testing.T) {
	e := createTestEngine(t, createValidConfig())

	c, err := e.Offset("2,2", "1,0")
	if err != nil {
		t.Fatalf("Failed to offset: %v", err)
	}
	if c.Location != "3,2" {
		t.Errorf("Expected 3,2, got %s", c.Location)
	}
	if _, err := e.Offset("2,2", "5,5"); !errors.Is(err, board.ErrLocationNotFound) {
		t.Errorf("Expected ErrLocationNotFound, got %v", err)
	}

	near, err := e.Neighbors("1,1", false)
	if err != nil {
		t.Fatalf("Failed to get neighbors: %v", err)
	}
	if !slices.Equal(near, []string{"1,2", "2,1"}) {
		t.Errorf("Expected [1,2 2,1], got %v", near)
	}

	if _, err := e.Safe("1,1", ""); !errors.Is(err, ErrPieceRequired) {
		t.Errorf("Expected ErrPieceRequired, got %v", err)
	}
}

func TestEngine_LineQueries(t *testing.T) {
	e := createTestEngine(t, createLineConfig())

	c, err := e.Offset("1", "3")
	if err != nil {
		t.Fatalf("Failed to offset: %v", err)
	}
	if c.Location != "4" || !slices.Equal(c.Pieces, []string{"x", "x"}) {
		t.Errorf("Expected cell 4 with [x x], got %+v", c)
	}

	near, _ := e.Neighbors("6", false)
	if !slices.Equal(near, []string{"5"}) {
		t.Errorf("Expected [5], got %v", near)
	}
	if _, err := e.Neighbors("bar", false); !errors.Is(err, board.ErrInvalidLocation) {
		t.Errorf("Expected ErrInvalidLocation for extra cell, got %v", err)
	}

	safe, err := e.Safe("4", "o")
	if err != nil || !safe {
		t.Errorf("Expected point 4 safe from o, got %v (%v)", safe, err)
	}
	safe, _ = e.Safe("bar", "o")
	if safe {
		t.Error("Expected extra cell never safe")
	}

	bar, _ := e.Cell("bar")
	if !bar.Extra {
		t.Error("Expected bar flagged as extra")
	}
}

func TestEngine_ConfigManagement(t *testing.T) {
	e := createTestEngine(t, createValidConfig())

	if err := e.SetConfig(createLineConfig()); err != nil {
		t.Fatalf("Failed to set config: %v", err)
	}
	if e.GetConfig().Name != "Test Line" {
		t.Errorf("Expected Test Line, got %s", e.GetConfig().Name)
	}
	if e.GetState().Kind != KindLine {
		t.Errorf("Expected line board after SetConfig, got %s", e.GetState().Kind)
	}

	bad := createValidConfig()
	bad.Dimensions = nil
	if err := e.SetConfig(bad); err == nil {
		t.Error("Expected error for invalid config")
	}
	if e.GetConfig().Name != "Test Line" {
		t.Error("Expected failed SetConfig to keep the previous config")
	}
}

func TestEngine_StateRoundTrip(t *testing.T) {
	e := createTestEngine(t, createLineConfig())
	e.Move("1", "5", "")
	e.Place("bar", "z")
	saved := e.GetState()

	restored := createTestEngine(t, createLineConfig())
	if err := restored.SetState(saved); err != nil {
		t.Fatalf("Failed to restore state: %v", err)
	}
	got := restored.GetState()
	if !slices.EqualFunc(got.Cells, saved.Cells, func(a, b CellState) bool {
		return a.Location == b.Location && slices.Equal(a.Pieces, b.Pieces) && a.Extra == b.Extra
	}) {
		t.Errorf("Expected cells restored, got %+v", got.Cells)
	}
	if got.TotalMoves != saved.TotalMoves {
		t.Errorf("Expected %d moves, got %d", saved.TotalMoves, got.TotalMoves)
	}
	if !slices.Equal(got.Captured, []string{"x"}) {
		t.Errorf("Expected captured [x], got %v", got.Captured)
	}
}

func TestEngine_SetStateErrors(t *testing.T) {
	e := createTestEngine(t, createValidConfig())

	if err := e.SetState(nil); err == nil {
		t.Error("Expected error for nil state")
	}

	other := createTestEngine(t, createLineConfig())
	if err := e.SetState(other.GetState()); !errors.Is(err, ErrStateMismatch) {
		t.Errorf("Expected ErrStateMismatch, got %v", err)
	}

	state := e.GetState()
	state.Cells = append(state.Cells, CellState{Location: "9,9", Pieces: []string{"x"}})
	if err := e.SetState(state); !errors.Is(err, ErrStateMismatch) {
		t.Errorf("Expected ErrStateMismatch for unknown cell, got %v", err)
	}
}

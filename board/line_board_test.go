package board

import (
	"errors"
	"slices"
	"testing"
)

func TestParseSpot(t *testing.T) {
	tests := []struct {
		input   string
		want    Spot
		wantErr bool
	}{
		{"4", At(4), false},
		{" 12 ", At(12), false},
		{"bar", Named("bar"), false},
		{"", Spot{}, true},
	}
	for _, tt := range tests {
		got, err := ParseSpot(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Expected error for %q", tt.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Failed to parse %q: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Expected %v, got %v", tt.want, got)
		}
	}
}

func TestSpot_Add(t *testing.T) {
	s, err := At(3).Add(At(2))
	if err != nil || s != At(5) {
		t.Errorf("Expected 5, got %v (%v)", s, err)
	}
	if _, err := Named("bar").Add(At(1)); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("Expected ErrInvalidLocation, got %v", err)
	}
	if At(7).String() != "7" || Named("home").String() != "home" {
		t.Error("Expected spots to print as their position or name")
	}
}

func TestNewLineBoard_ExtraCells(t *testing.T) {
	l, err := NewLineBoard[string](5, []string{"bench"})
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	if l.Len() != 6 {
		t.Errorf("Expected 6 cells, got %d", l.Len())
	}
	if _, err := l.Cell(Named("bench")); err != nil {
		t.Errorf("Expected bench cell, got %v", err)
	}
	if !l.IsExtra(Named("bench")) {
		t.Error("Expected bench to be an extra cell")
	}

	l.Fill(Named("bench"), "x", "x")
	if safe, _ := l.Safe(Named("bench"), "o"); safe {
		t.Error("Expected bench never to be safe")
	}
	if !slices.Equal(l.ExtraCells(), []string{"bench"}) {
		t.Errorf("Expected [bench], got %v", l.ExtraCells())
	}
	if l.String() != "<LineBoard with 6 MultiCells>" {
		t.Errorf("Expected debug description, got %s", l.String())
	}
}

func TestNewLineBoard_Invalid(t *testing.T) {
	if _, err := NewLineBoard[string](0, nil); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := NewLineBoard[string](3, []string{"bar", "bar"}); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("Expected ErrInvalidLocation for duplicate extra cell, got %v", err)
	}
	if _, err := NewLineBoard[string](3, []string{""}); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("Expected ErrInvalidLocation for empty name, got %v", err)
	}
	if _, err := NewLineBoard[string](3, []string{"2"}); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("Expected ErrInvalidLocation for numeric name, got %v", err)
	}
	for _, name := range []string{" bar", "bar ", "\tbar"} {
		if _, err := NewLineBoard[string](3, []string{name}); !errors.Is(err, ErrInvalidLocation) {
			t.Errorf("Expected ErrInvalidLocation for %q, got %v", name, err)
		}
	}
}

func TestLineBoard_DisplaceScenario(t *testing.T) {
	l, err := NewLineBoard[string](4, nil)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	l.Place(At(2), "A")
	l.Place(At(4), "B")

	captured, err := l.Displace(At(2), At(4))
	if err != nil {
		t.Fatalf("Failed to displace: %v", err)
	}
	if !slices.Equal(captured, []string{"B"}) {
		t.Errorf("Expected [B] captured, got %v", captured)
	}
	if got := pieces(t, l.Board, At(2)); len(got) != 0 {
		t.Errorf("Expected cell 2 empty, got %v", got)
	}
	if got := pieces(t, l.Board, At(4)); !slices.Equal(got, []string{"A"}) {
		t.Errorf("Expected cell 4 to hold A, got %v", got)
	}
}

func TestLineBoard_Offset(t *testing.T) {
	l, _ := NewLineBoard[string](6, []string{"bar"})
	cell, err := l.Offset(At(2), At(3))
	if err != nil {
		t.Fatalf("Failed to offset: %v", err)
	}
	if cell.Location() != At(5) {
		t.Errorf("Expected 5, got %v", cell.Location())
	}
	if _, err := l.Offset(At(5), At(3)); !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("Expected ErrLocationNotFound past the end, got %v", err)
	}
	if _, err := l.Offset(Named("bar"), At(1)); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("Expected ErrInvalidLocation from extra cell, got %v", err)
	}
}

func TestLineBoard_Copy(t *testing.T) {
	l, _ := NewLineBoard(5, []string{"bar", "home"},
		WithCellFactory(SingleCells[Spot, string]()),
		WithMovePolicy(SafeCapture[Spot, string]()),
	)
	l.Place(At(1), "o")
	l.Place(Named("bar"), "x")

	clone := l.Copy()
	if clone.Length() != 5 {
		t.Errorf("Expected length 5, got %d", clone.Length())
	}
	if !slices.Equal(clone.ExtraCells(), []string{"bar", "home"}) {
		t.Errorf("Expected extra cells kept, got %v", clone.ExtraCells())
	}
	if clone.String() != "<LineBoard with 7 SingleCells>" {
		t.Errorf("Expected cell kind kept, got %s", clone.String())
	}
	if !clone.Equal(l.Board) {
		t.Error("Expected copy to equal original")
	}

	clone.Place(At(1), "z")
	if got := pieces(t, l.Board, At(1)); !slices.Equal(got, []string{"o"}) {
		t.Errorf("Expected original untouched, got %v", got)
	}
}

func TestLineBoard_SafeCaptureBlocks(t *testing.T) {
	l, _ := NewLineBoard(4, []string{"bar"}, WithMovePolicy(SafeCapture[Spot, string]()))
	l.Fill(At(1), "o")
	l.Fill(At(3), "x", "x")
	l.Fill(At(4), "x")

	if _, err := l.Move(At(1), At(3)); !errors.Is(err, ErrUnsafeCapture) {
		t.Fatalf("Expected ErrUnsafeCapture, got %v", err)
	}
	captured, err := l.Move(At(1), At(4))
	if err != nil {
		t.Fatalf("Failed to move: %v", err)
	}
	if !slices.Equal(captured, []string{"x"}) {
		t.Errorf("Expected blot captured, got %v", captured)
	}
	if _, err := l.Stack(Named("bar"), captured[0]); err != nil {
		t.Fatalf("Failed to send piece to bar: %v", err)
	}
	if got := pieces(t, l.Board, Named("bar")); !slices.Equal(got, []string{"x"}) {
		t.Errorf("Expected bar to hold x, got %v", got)
	}
}

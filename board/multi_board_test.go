package board

import (
	"errors"
	"slices"
	"testing"
)

func TestMultiBoard_Stacking(t *testing.T) {
	m, err := NewMultiBoard[string]([]int{2, 2})
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	m.Place(C(1, 1), "x")
	m.Place(C(1, 1), "x")
	m.Place(C(1, 1), "y")

	cell, _ := m.Cell(C(1, 1))
	if top, _ := cell.Peek(); top != "y" {
		t.Errorf("Expected y on top, got %s", top)
	}

	captured, err := m.Move(C(1, 1), C(1, 2))
	if err != nil {
		t.Fatalf("Failed to move: %v", err)
	}
	if len(captured) != 0 {
		t.Errorf("Expected no capture onto empty stack, got %v", captured)
	}
	if pile, _ := m.Pile(C(1, 2)); !slices.Equal(pile, []string{"y"}) {
		t.Errorf("Expected [y], got %v", pile)
	}
	if pile, _ := m.Pile(C(1, 1)); !slices.Equal(pile, []string{"x", "x"}) {
		t.Errorf("Expected [x x], got %v", pile)
	}
}

func TestMultiBoard_Capture(t *testing.T) {
	m, _ := NewMultiBoard[string]([]int{2, 2})
	m.Place(C(1, 1), "x")
	m.Place(C(2, 2), "y")
	m.Place(C(2, 2), "y")

	captured, err := m.Move(C(1, 1), C(2, 2))
	if err != nil {
		t.Fatalf("Failed to move: %v", err)
	}
	if !slices.Equal(captured, []string{"y", "y"}) {
		t.Errorf("Expected [y y] captured, got %v", captured)
	}
	if pile, _ := m.Pile(C(2, 2)); !slices.Equal(pile, []string{"x"}) {
		t.Errorf("Expected [x], got %v", pile)
	}
}

func TestMultiBoard_MoveAlwaysPopsTop(t *testing.T) {
	m, _ := NewMultiBoard[string]([]int{2, 2})
	m.Place(C(1, 1), "x")
	m.Place(C(1, 1), "y")
	m.Place(C(1, 2), "x")

	if _, err := m.Move(C(1, 1), C(1, 2), "x"); !errors.Is(err, ErrPieceNotFound) {
		t.Errorf("Expected ErrPieceNotFound when naming a buried piece, got %v", err)
	}
	if pile, _ := m.Pile(C(1, 1)); !slices.Equal(pile, []string{"x", "y"}) {
		t.Errorf("Expected [x y] untouched, got %v", pile)
	}

	captured, err := m.Move(C(1, 1), C(1, 2))
	if err != nil {
		t.Fatalf("Failed to move: %v", err)
	}
	if !slices.Equal(captured, []string{"x"}) {
		t.Errorf("Expected [x] captured by y, got %v", captured)
	}
	if pile, _ := m.Pile(C(1, 1)); !slices.Equal(pile, []string{"x"}) {
		t.Errorf("Expected [x] left behind, got %v", pile)
	}
	if pile, _ := m.Pile(C(1, 2)); !slices.Equal(pile, []string{"y"}) {
		t.Errorf("Expected [y], got %v", pile)
	}
}

func TestMultiBoard_JoinSameTop(t *testing.T) {
	m, _ := NewMultiBoard[string]([]int{1, 2})
	m.Place(C(1, 1), "x")
	m.Place(C(1, 2), "x")

	captured, err := m.Move(C(1, 1), C(1, 2))
	if err != nil {
		t.Fatalf("Failed to move: %v", err)
	}
	if captured != nil {
		t.Errorf("Expected no capture, got %v", captured)
	}
	if pile, _ := m.Pile(C(1, 2)); !slices.Equal(pile, []string{"x", "x"}) {
		t.Errorf("Expected [x x], got %v", pile)
	}
}

func TestMultiBoard_Copy(t *testing.T) {
	m, _ := NewMultiBoard[string]([]int{2, 2})
	m.Place(C(1, 1), "x")
	m.Place(C(1, 1), "y")

	clone := m.Copy()
	if clone.String() != "<MultiBoard with 2x2 MultiCells>" {
		t.Errorf("Expected debug description, got %s", clone.String())
	}
	clone.Place(C(1, 1), "z")
	if pile, _ := m.Pile(C(1, 1)); !slices.Equal(pile, []string{"x", "y"}) {
		t.Errorf("Expected original stack untouched, got %v", pile)
	}
	if pile, _ := clone.Pile(C(1, 1)); !slices.Equal(pile, []string{"x", "y", "z"}) {
		t.Errorf("Expected [x y z] on copy, got %v", pile)
	}

	if _, err := clone.Move(C(1, 1), C(2, 2)); err != nil {
		t.Fatalf("Expected copy to keep the stack rule: %v", err)
	}
}

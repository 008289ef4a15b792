package board

import (
	"errors"
	"slices"
	"testing"
)

func TestNewDimBoard_GridShape(t *testing.T) {
	tests := []struct {
		rows, cols int
	}{
		{1, 1},
		{3, 3},
		{2, 5},
		{8, 8},
	}
	for _, tt := range tests {
		d, err := NewDimBoard[string]([]int{tt.rows, tt.cols})
		if err != nil {
			t.Fatalf("Failed to create %dx%d board: %v", tt.rows, tt.cols, err)
		}
		if d.Len() != tt.rows*tt.cols {
			t.Errorf("Expected %d cells, got %d", tt.rows*tt.cols, d.Len())
		}
		for _, loc := range d.Locations() {
			if loc.At(0) < 1 || loc.At(0) > tt.rows || loc.At(1) < 1 || loc.At(1) > tt.cols {
				t.Errorf("Location %v outside %dx%d grid", loc, tt.rows, tt.cols)
			}
		}
	}
}

func TestNewDimBoard_Order(t *testing.T) {
	d, _ := NewDimBoard[string]([]int{2, 2})
	want := []Coordinate{C(1, 1), C(1, 2), C(2, 1), C(2, 2)}
	if !slices.Equal(d.Locations(), want) {
		t.Errorf("Expected %v, got %v", want, d.Locations())
	}
	if d.String() != "<DimBoard with 2x2 SingleCells>" {
		t.Errorf("Expected debug description, got %s", d.String())
	}
}

func TestNewDimBoard_Invalid(t *testing.T) {
	for _, dims := range [][]int{nil, {0, 3}, {3, -1}, {1, 1, 1, 1, 1, 1, 1}} {
		if _, err := NewDimBoard[string](dims); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("Expected ErrInvalidDimensions for %v, got %v", dims, err)
		}
	}
}

func TestDimBoard_ThreeDimensions(t *testing.T) {
	d, err := NewDimBoard[int]([]int{2, 3, 4})
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	if d.Len() != 24 {
		t.Errorf("Expected 24 cells, got %d", d.Len())
	}
	if !d.Has(C(2, 3, 4)) || d.Has(C(3, 1, 1)) {
		t.Error("Expected (2, 3, 4) on the board and (3, 1, 1) off it")
	}
}

func TestDimBoard_OffsetScenario(t *testing.T) {
	d, _ := NewDimBoard[string]([]int{3, 3})

	cell, err := d.Offset(C(2, 2), C(1, 0))
	if err != nil {
		t.Fatalf("Failed to offset: %v", err)
	}
	if cell.Location() != C(3, 2) {
		t.Errorf("Expected (3, 2), got %v", cell.Location())
	}

	if _, err := d.Offset(C(2, 2), C(5, 5)); !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("Expected ErrLocationNotFound, got %v", err)
	}
	if _, err := d.Offset(C(2, 2), C(1)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Expected ErrDimensionMismatch, got %v", err)
	}
}

func TestDimBoard_Copy(t *testing.T) {
	d, _ := NewDimBoard([]int{3, 3}, WithCellFactory(MultiCells[Coordinate, string]()))
	d.Fill(C(1, 1), "a", "b")
	d.Place(C(3, 3), "c")

	clone := d.Copy()
	if !clone.Equal(d.Board) {
		t.Fatal("Expected copy to equal original")
	}
	if !slices.Equal(clone.Dimensions(), []int{3, 3}) {
		t.Errorf("Expected dimensions [3 3], got %v", clone.Dimensions())
	}
	if clone.String() != "<DimBoard with 3x3 MultiCells>" {
		t.Errorf("Expected cell kind kept, got %s", clone.String())
	}

	clone.Place(C(1, 1), "x")
	if got := pieces(t, d.Board, C(1, 1)); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Expected original untouched, got %v", got)
	}
}

func TestDimBoard_InBounds(t *testing.T) {
	d, _ := NewDimBoard[string]([]int{3, 4})
	tests := []struct {
		c    Coordinate
		want bool
	}{
		{C(1, 1), true},
		{C(3, 4), true},
		{C(0, 1), false},
		{C(4, 1), false},
		{C(1, 5), false},
		{C(1), false},
	}
	for _, tt := range tests {
		if got := d.InBounds(tt.c); got != tt.want {
			t.Errorf("InBounds(%v): expected %v, got %v", tt.c, tt.want, got)
		}
	}
}

func TestDimBoard_Neighbors(t *testing.T) {
	d, _ := NewDimBoard[string]([]int{3, 3})

	orth, err := d.Neighbors(C(2, 2), false)
	if err != nil {
		t.Fatalf("Failed to get neighbors: %v", err)
	}
	want := []Coordinate{C(1, 2), C(2, 1), C(2, 3), C(3, 2)}
	if !slices.Equal(orth, want) {
		t.Errorf("Expected %v, got %v", want, orth)
	}

	all, _ := d.Neighbors(C(2, 2), true)
	if len(all) != 8 {
		t.Errorf("Expected 8 neighbors with diagonals, got %d", len(all))
	}

	corner, _ := d.Neighbors(C(1, 1), true)
	want = []Coordinate{C(1, 2), C(2, 1), C(2, 2)}
	if !slices.Equal(corner, want) {
		t.Errorf("Expected %v, got %v", want, corner)
	}

	if _, err := d.Neighbors(C(1, 1, 1), false); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Expected ErrDimensionMismatch, got %v", err)
	}
}

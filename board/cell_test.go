package board

import (
	"errors"
	"slices"
	"testing"
)

type token struct {
	name  string
	moved *int
}

func (tk token) CopyPiece() token {
	n := *tk.moved
	return token{name: tk.name, moved: &n}
}

func newOccupiedSingle() *SingleCell[string, string] {
	cell := NewSingleCell[string, string]("here")
	cell.AddPiece("@")
	return cell
}

func TestSingleCell_Capture(t *testing.T) {
	cell := newOccupiedSingle()
	captured := cell.AddPiece("&")
	if !slices.Equal(captured, []string{"@"}) {
		t.Errorf("Expected [@] captured, got %v", captured)
	}
	if p, _ := cell.Peek(); p != "&" {
		t.Errorf("Expected & in cell, got %s", p)
	}

	empty := NewSingleCell[string, string]("there")
	if captured := empty.AddPiece("x"); captured != nil {
		t.Errorf("Expected nothing captured from empty cell, got %v", captured)
	}
}

func TestSingleCell_Clear(t *testing.T) {
	cell := newOccupiedSingle()
	cell.Clear()
	if cell.Len() != 0 {
		t.Errorf("Expected length 0 after clear, got %d", cell.Len())
	}
	if cell.String() != " " {
		t.Errorf("Expected empty glyph, got %q", cell.String())
	}

	cell.ClearTo(".")
	if p, ok := cell.Peek(); !ok || p != "." {
		t.Errorf("Expected cell cleared to '.', got %q", p)
	}
}

func TestSingleCell_ContainsAndCount(t *testing.T) {
	cell := newOccupiedSingle()
	if !cell.Contains("@") {
		t.Error("Expected cell to contain @")
	}
	if cell.Contains("p") {
		t.Error("Expected cell not to contain p")
	}
	if cell.Count("@") != 1 || cell.Count("p") != 0 {
		t.Errorf("Expected counts 1 and 0, got %d and %d", cell.Count("@"), cell.Count("p"))
	}
}

func TestSingleCell_Remove(t *testing.T) {
	cell := newOccupiedSingle()

	_, err := cell.RemovePiece("&")
	if !errors.Is(err, ErrPieceNotFound) {
		t.Errorf("Expected ErrPieceNotFound, got %v", err)
	}
	if !cell.Contains("@") {
		t.Error("Expected failed remove to leave the cell unchanged")
	}

	piece, err := cell.RemovePiece()
	if err != nil {
		t.Fatalf("Failed to remove piece: %v", err)
	}
	if piece != "@" {
		t.Errorf("Expected @, got %s", piece)
	}
	if cell.Len() != 0 {
		t.Errorf("Expected empty cell, got length %d", cell.Len())
	}

	if _, err := cell.RemovePiece(); !errors.Is(err, ErrEmptyCell) {
		t.Errorf("Expected ErrEmptyCell, got %v", err)
	}
}

func TestSingleCell_Pieces(t *testing.T) {
	cell := newOccupiedSingle()
	if !slices.Equal(cell.Pieces(), []string{"@"}) {
		t.Errorf("Expected [@], got %v", cell.Pieces())
	}
	cell.Clear()
	if len(cell.Pieces()) != 0 {
		t.Errorf("Expected no pieces, got %v", cell.Pieces())
	}
}

func TestSingleCell_SetContents(t *testing.T) {
	cell := NewSingleCell[string, string]("here")
	if err := cell.SetContents([]string{"a", "b"}); !errors.Is(err, ErrTooManyPieces) {
		t.Errorf("Expected ErrTooManyPieces, got %v", err)
	}
	if err := cell.SetContents([]string{"a"}); err != nil {
		t.Fatalf("Failed to set contents: %v", err)
	}
	if !cell.Contains("a") {
		t.Error("Expected cell to hold a")
	}
	if err := cell.SetContents(nil); err != nil {
		t.Fatalf("Failed to clear contents: %v", err)
	}
	if cell.Len() != 0 {
		t.Error("Expected cell to be empty")
	}
}

func TestSingleCell_Equal(t *testing.T) {
	a := newOccupiedSingle()
	b := newOccupiedSingle()
	if !a.Equal(b) {
		t.Error("Expected cells with same location and piece to be equal")
	}
	b.AddPiece("knight")
	if a.Equal(b) {
		t.Error("Expected cells with different pieces to differ")
	}
	other := NewSingleCell[string, string]("there")
	other.AddPiece("@")
	if a.Equal(other) {
		t.Error("Expected cells at different locations to differ")
	}
}

func TestSingleCell_CopyPieceIndependence(t *testing.T) {
	moves := 0
	cell := NewSingleCell[string, token]("here")
	cell.AddPiece(token{name: "rook", moved: &moves})

	copied, ok := cell.CopyPiece()
	if !ok {
		t.Fatal("Expected a piece to copy")
	}
	*copied.moved = 5
	if moves != 0 {
		t.Errorf("Expected original piece untouched, got %d moves", moves)
	}
}

func TestSingleCell_EmptyGlyph(t *testing.T) {
	cell := NewSingleCell[string, string]("here")
	cell.SetEmpty("+")
	if cell.Empty() != "+" || cell.String() != "+" {
		t.Errorf("Expected + glyph, got %q", cell.String())
	}
}

func newStack(pieces ...string) *MultiCell[int, string] {
	cell := NewMultiCell[int, string](1)
	cell.Extend(pieces...)
	return cell
}

func TestMultiCell_AddAndRemove(t *testing.T) {
	cell := newStack("a", "b")
	if captured := cell.AddPiece("c"); captured != nil {
		t.Errorf("Expected no capture from a stack, got %v", captured)
	}
	if !slices.Equal(cell.Pieces(), []string{"a", "b", "c"}) {
		t.Errorf("Expected [a b c], got %v", cell.Pieces())
	}

	piece, err := cell.RemovePiece()
	if err != nil || piece != "c" {
		t.Errorf("Expected to pop c, got %s (%v)", piece, err)
	}
	piece, err = cell.RemovePiece("a")
	if err != nil || piece != "a" {
		t.Errorf("Expected to remove a, got %s (%v)", piece, err)
	}
	if _, err := cell.RemovePiece("z"); !errors.Is(err, ErrPieceNotFound) {
		t.Errorf("Expected ErrPieceNotFound, got %v", err)
	}
	if !slices.Equal(cell.Pieces(), []string{"b"}) {
		t.Errorf("Expected [b], got %v", cell.Pieces())
	}
}

func TestMultiCell_PopEmpty(t *testing.T) {
	cell := newStack()
	if _, err := cell.Pop(); !errors.Is(err, ErrEmptyCell) {
		t.Errorf("Expected ErrEmptyCell, got %v", err)
	}
	if _, err := cell.RemovePiece(); !errors.Is(err, ErrEmptyCell) {
		t.Errorf("Expected ErrEmptyCell, got %v", err)
	}
}

func TestMultiCell_PopIndex(t *testing.T) {
	cell := newStack("a", "b", "c")
	piece, err := cell.Pop(0)
	if err != nil || piece != "a" {
		t.Errorf("Expected to pop a, got %s (%v)", piece, err)
	}
	piece, err = cell.Pop(-2)
	if err != nil || piece != "b" {
		t.Errorf("Expected to pop b, got %s (%v)", piece, err)
	}
	if _, err := cell.Pop(4); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestMultiCell_Insert(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{"front", 0, []string{"x", "a", "b"}},
		{"middle", 1, []string{"a", "x", "b"}},
		{"end", 2, []string{"a", "b", "x"}},
		{"past end", 10, []string{"a", "b", "x"}},
		{"negative", -1, []string{"a", "x", "b"}},
		{"far negative", -10, []string{"x", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := newStack("a", "b")
			cell.Insert(tt.index, "x")
			if !slices.Equal(cell.Pieces(), tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, cell.Pieces())
			}
		})
	}
}

func TestMultiCell_IndexCountReverse(t *testing.T) {
	cell := newStack("a", "b", "a", "c")
	if cell.Count("a") != 2 {
		t.Errorf("Expected count 2, got %d", cell.Count("a"))
	}
	if i, err := cell.Index("c"); err != nil || i != 3 {
		t.Errorf("Expected index 3, got %d (%v)", i, err)
	}
	if _, err := cell.Index("z"); !errors.Is(err, ErrPieceNotFound) {
		t.Errorf("Expected ErrPieceNotFound, got %v", err)
	}
	cell.Reverse()
	if !slices.Equal(cell.Pieces(), []string{"c", "a", "b", "a"}) {
		t.Errorf("Expected reversed stack, got %v", cell.Pieces())
	}
	if err := cell.Remove("a"); err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}
	if !slices.Equal(cell.Pieces(), []string{"c", "b", "a"}) {
		t.Errorf("Expected first a removed, got %v", cell.Pieces())
	}
}

func TestMultiCell_Indexing(t *testing.T) {
	cell := newStack("a", "b", "c", "d")

	if p, err := cell.At(-1); err != nil || p != "d" {
		t.Errorf("Expected d at -1, got %s (%v)", p, err)
	}
	if err := cell.Set(1, "B"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	if err := cell.Delete(0); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if !slices.Equal(cell.Pieces(), []string{"B", "c", "d"}) {
		t.Errorf("Expected [B c d], got %v", cell.Pieces())
	}
	if got := cell.Slice(1, 10); !slices.Equal(got, []string{"c", "d"}) {
		t.Errorf("Expected [c d], got %v", got)
	}
	if got := cell.Slice(2, 1); len(got) != 0 {
		t.Errorf("Expected empty slice, got %v", got)
	}
	cell.DeleteRange(0, -1)
	if !slices.Equal(cell.Pieces(), []string{"d"}) {
		t.Errorf("Expected [d], got %v", cell.Pieces())
	}
	if err := cell.Set(5, "x"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestMultiCell_ClearAndPeek(t *testing.T) {
	cell := newStack("a", "b")
	if p, ok := cell.Peek(); !ok || p != "b" {
		t.Errorf("Expected b on top, got %s", p)
	}
	cell.Clear()
	if _, ok := cell.Peek(); ok {
		t.Error("Expected nothing to peek after clear")
	}
	cell.ClearTo([]string{"x", "y"})
	if !slices.Equal(cell.Pieces(), []string{"x", "y"}) {
		t.Errorf("Expected [x y], got %v", cell.Pieces())
	}
	if cell.String() != "[x y]" {
		t.Errorf("Expected [x y], got %s", cell.String())
	}
}

func TestMultiCell_CopyIndependence(t *testing.T) {
	cell := newStack("a", "b")
	copied := cell.CopyPiece()
	copied[0] = "z"
	cell.Append("c")
	if !slices.Equal(cell.Pieces(), []string{"a", "b", "c"}) {
		t.Errorf("Expected original untouched, got %v", cell.Pieces())
	}
	if len(copied) != 2 {
		t.Errorf("Expected copy to keep 2 pieces, got %d", len(copied))
	}

	pieces := cell.Pieces()
	pieces[0] = "q"
	if p, _ := cell.At(0); p != "a" {
		t.Error("Expected Pieces to return a copy")
	}
}

func TestCellsEqual(t *testing.T) {
	var a, b Cell[int, string] = newStack("a"), newStack("a")
	if !CellsEqual(a, b) {
		t.Error("Expected equal stacks")
	}
	single := NewSingleCell[int, string](1)
	single.AddPiece("a")
	if !CellsEqual[int, string](a, single) {
		t.Error("Expected cells to compare by location and contents")
	}
	if CellsEqual[int, string](a, nil) {
		t.Error("Expected nil cell to differ")
	}
}

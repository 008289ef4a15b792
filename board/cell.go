package board

import (
	"fmt"
	"slices"
)

// DefaultEmpty is how an empty cell looks unless a game says otherwise
const DefaultEmpty = " "

// Cell is a single addressable location on a board.
//
// The two implementations differ in capacity: a SingleCell holds at most one
// piece, a MultiCell holds an ordered stack. Pieces are reported bottom first,
// so Peek returns the last element of Pieces.
type Cell[L comparable, P comparable] interface {
	// Location returns where the cell is on its board
	Location() L

	// AddPiece adds a piece and returns any piece it pushed out of the cell
	AddPiece(piece P) []P

	// RemovePiece removes and returns the named piece, or the top piece
	// when no piece is named
	RemovePiece(piece ...P) (P, error)

	// Clear removes every piece
	Clear()

	// Count returns how many times a piece is in the cell
	Count(piece P) int

	// Contains reports whether a piece is in the cell
	Contains(piece P) bool

	// Len returns the number of pieces in the cell
	Len() int

	// Peek returns the top piece without removing it
	Peek() (P, bool)

	// Pieces returns the contents, bottom first. The slice is a copy.
	Pieces() []P

	// CopyContents returns the contents deep-copied for another board
	CopyContents() []P

	// SetContents replaces the contents wholesale
	SetContents(pieces []P) error

	// Empty returns the glyph shown when the cell has no pieces
	Empty() string
}

// Copier is implemented by mutable piece types. Board copies call CopyPiece
// so that the copy does not share piece state with the original.
type Copier[P any] interface {
	CopyPiece() P
}

// CellFactory creates the cell for a location when a board is built
type CellFactory[L comparable, P comparable] func(location L) Cell[L, P]

// SingleCells returns a factory for one-piece cells
func SingleCells[L comparable, P comparable]() CellFactory[L, P] {
	return func(location L) Cell[L, P] {
		return NewSingleCell[L, P](location)
	}
}

// MultiCells returns a factory for stack cells
func MultiCells[L comparable, P comparable]() CellFactory[L, P] {
	return func(location L) Cell[L, P] {
		return NewMultiCell[L, P](location)
	}
}

// CellsEqual reports whether two cells have the same location and contents
func CellsEqual[L comparable, P comparable](a, b Cell[L, P]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Location() == b.Location() && slices.Equal(a.Pieces(), b.Pieces())
}

// copyPiece deep-copies a piece when its type knows how
func copyPiece[P any](piece P) P {
	if c, ok := any(piece).(Copier[P]); ok {
		return c.CopyPiece()
	}
	return piece
}

// cellKind names a cell's variant for debug output
func cellKind[L comparable, P comparable](cell Cell[L, P]) string {
	switch cell.(type) {
	case *SingleCell[L, P]:
		return "SingleCell"
	case *MultiCell[L, P]:
		return "MultiCell"
	default:
		return fmt.Sprintf("%T", cell)
	}
}

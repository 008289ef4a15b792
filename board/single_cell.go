package board

import (
	"fmt"
	"slices"
)

// SingleCell holds at most one piece
type SingleCell[L comparable, P comparable] struct {
	location L
	piece    P
	occupied bool
	empty    string
}

// NewSingleCell creates an empty cell at a location
func NewSingleCell[L comparable, P comparable](location L) *SingleCell[L, P] {
	return &SingleCell[L, P]{location: location, empty: DefaultEmpty}
}

func (c *SingleCell[L, P]) Location() L {
	return c.location
}

// Empty returns the glyph shown when the cell has no piece
func (c *SingleCell[L, P]) Empty() string {
	return c.empty
}

// SetEmpty changes the empty glyph
func (c *SingleCell[L, P]) SetEmpty(glyph string) {
	c.empty = glyph
}

// AddPiece stores the piece and returns the previous occupant, if any
func (c *SingleCell[L, P]) AddPiece(piece P) []P {
	var captured []P
	if c.occupied {
		captured = []P{c.piece}
	}
	c.piece = piece
	c.occupied = true
	return captured
}

// RemovePiece empties the cell and returns its piece. Naming a piece that is
// not the occupant fails with ErrPieceNotFound and leaves the cell alone.
func (c *SingleCell[L, P]) RemovePiece(piece ...P) (P, error) {
	var zero P
	if !c.occupied {
		return zero, fmt.Errorf("%w at %v", ErrEmptyCell, c.location)
	}
	if len(piece) > 0 && piece[0] != c.piece {
		return zero, fmt.Errorf("%w: %v at %v", ErrPieceNotFound, piece[0], c.location)
	}
	removed := c.piece
	c.piece = zero
	c.occupied = false
	return removed, nil
}

func (c *SingleCell[L, P]) Clear() {
	var zero P
	c.piece = zero
	c.occupied = false
}

// ClearTo resets the cell so that it holds fill
func (c *SingleCell[L, P]) ClearTo(fill P) {
	c.piece = fill
	c.occupied = true
}

func (c *SingleCell[L, P]) Count(piece P) int {
	if c.occupied && c.piece == piece {
		return 1
	}
	return 0
}

func (c *SingleCell[L, P]) Contains(piece P) bool {
	return c.Count(piece) == 1
}

// Len is 1 when the cell is occupied and 0 otherwise
func (c *SingleCell[L, P]) Len() int {
	if c.occupied {
		return 1
	}
	return 0
}

func (c *SingleCell[L, P]) Peek() (P, bool) {
	return c.piece, c.occupied
}

func (c *SingleCell[L, P]) Pieces() []P {
	if !c.occupied {
		return nil
	}
	return []P{c.piece}
}

// CopyPiece returns a copy of the occupant
func (c *SingleCell[L, P]) CopyPiece() (P, bool) {
	if !c.occupied {
		var zero P
		return zero, false
	}
	return copyPiece(c.piece), true
}

func (c *SingleCell[L, P]) CopyContents() []P {
	if piece, ok := c.CopyPiece(); ok {
		return []P{piece}
	}
	return nil
}

// SetContents accepts zero or one piece
func (c *SingleCell[L, P]) SetContents(pieces []P) error {
	switch len(pieces) {
	case 0:
		c.Clear()
	case 1:
		c.piece = pieces[0]
		c.occupied = true
	default:
		return fmt.Errorf("%w: %d pieces at %v", ErrTooManyPieces, len(pieces), c.location)
	}
	return nil
}

// Equal reports whether both cells share location and contents
func (c *SingleCell[L, P]) Equal(other Cell[L, P]) bool {
	return other != nil && c.location == other.Location() && slices.Equal(c.Pieces(), other.Pieces())
}

// String shows the piece, or the empty glyph
func (c *SingleCell[L, P]) String() string {
	if !c.occupied {
		return c.empty
	}
	return fmt.Sprint(c.piece)
}

package board

import (
	"fmt"
	"slices"
	"strings"
)

// MultiCell holds an ordered stack of pieces. Index 0 is the bottom.
type MultiCell[L comparable, P comparable] struct {
	location L
	contents []P
	empty    string
}

// NewMultiCell creates an empty stack at a location
func NewMultiCell[L comparable, P comparable](location L) *MultiCell[L, P] {
	return &MultiCell[L, P]{location: location, empty: DefaultEmpty}
}

func (c *MultiCell[L, P]) Location() L {
	return c.location
}

func (c *MultiCell[L, P]) Empty() string {
	return c.empty
}

// SetEmpty changes the empty glyph
func (c *MultiCell[L, P]) SetEmpty(glyph string) {
	c.empty = glyph
}

// AddPiece appends. A stack never pushes anything out.
func (c *MultiCell[L, P]) AddPiece(piece P) []P {
	c.contents = append(c.contents, piece)
	return nil
}

// RemovePiece removes the named piece, or pops the top one
func (c *MultiCell[L, P]) RemovePiece(piece ...P) (P, error) {
	if len(piece) > 0 {
		if err := c.Remove(piece[0]); err != nil {
			var zero P
			return zero, err
		}
		return piece[0], nil
	}
	return c.Pop()
}

// Append adds a piece on top
func (c *MultiCell[L, P]) Append(piece P) {
	c.contents = append(c.contents, piece)
}

// Extend adds pieces on top, in order
func (c *MultiCell[L, P]) Extend(pieces ...P) {
	c.contents = append(c.contents, pieces...)
}

// Insert puts a piece before index i. Out of range indexes clamp to the
// ends and negative ones count from the top.
func (c *MultiCell[L, P]) Insert(i int, piece P) {
	n := len(c.contents)
	if i < 0 {
		i += n
		if i < 0 {
			i = 0
		}
	}
	if i > n {
		i = n
	}
	c.contents = slices.Insert(c.contents, i, piece)
}

// Remove deletes the first occurrence of piece
func (c *MultiCell[L, P]) Remove(piece P) error {
	i := slices.Index(c.contents, piece)
	if i < 0 {
		return fmt.Errorf("%w: %v at %v", ErrPieceNotFound, piece, c.location)
	}
	c.contents = slices.Delete(c.contents, i, i+1)
	return nil
}

// Pop removes and returns the piece at index i, the top one by default
func (c *MultiCell[L, P]) Pop(i ...int) (P, error) {
	var zero P
	if len(c.contents) == 0 {
		return zero, fmt.Errorf("%w at %v", ErrEmptyCell, c.location)
	}
	idx := len(c.contents) - 1
	if len(i) > 0 {
		var err error
		if idx, err = c.index(i[0]); err != nil {
			return zero, err
		}
	}
	piece := c.contents[idx]
	c.contents = slices.Delete(c.contents, idx, idx+1)
	return piece, nil
}

// Reverse flips the stack in place
func (c *MultiCell[L, P]) Reverse() {
	slices.Reverse(c.contents)
}

// Index returns the position of the first occurrence of piece
func (c *MultiCell[L, P]) Index(piece P) (int, error) {
	i := slices.Index(c.contents, piece)
	if i < 0 {
		return -1, fmt.Errorf("%w: %v at %v", ErrPieceNotFound, piece, c.location)
	}
	return i, nil
}

// At returns the piece at index i; negative indexes count from the top
func (c *MultiCell[L, P]) At(i int) (P, error) {
	idx, err := c.index(i)
	if err != nil {
		var zero P
		return zero, err
	}
	return c.contents[idx], nil
}

// Set replaces the piece at index i
func (c *MultiCell[L, P]) Set(i int, piece P) error {
	idx, err := c.index(i)
	if err != nil {
		return err
	}
	c.contents[idx] = piece
	return nil
}

// Delete removes the piece at index i
func (c *MultiCell[L, P]) Delete(i int) error {
	idx, err := c.index(i)
	if err != nil {
		return err
	}
	c.contents = slices.Delete(c.contents, idx, idx+1)
	return nil
}

// Slice returns a copy of contents[i:j] with the usual clamping
func (c *MultiCell[L, P]) Slice(i, j int) []P {
	i, j = c.bounds(i, j)
	return slices.Clone(c.contents[i:j])
}

// DeleteRange removes contents[i:j] with the usual clamping
func (c *MultiCell[L, P]) DeleteRange(i, j int) {
	i, j = c.bounds(i, j)
	c.contents = slices.Delete(c.contents, i, j)
}

func (c *MultiCell[L, P]) Clear() {
	c.contents = nil
}

// ClearTo resets the stack to a copy of fill
func (c *MultiCell[L, P]) ClearTo(fill []P) {
	c.contents = slices.Clone(fill)
}

func (c *MultiCell[L, P]) Count(piece P) int {
	n := 0
	for _, p := range c.contents {
		if p == piece {
			n++
		}
	}
	return n
}

func (c *MultiCell[L, P]) Contains(piece P) bool {
	return slices.Contains(c.contents, piece)
}

func (c *MultiCell[L, P]) Len() int {
	return len(c.contents)
}

func (c *MultiCell[L, P]) Peek() (P, bool) {
	if len(c.contents) == 0 {
		var zero P
		return zero, false
	}
	return c.contents[len(c.contents)-1], true
}

func (c *MultiCell[L, P]) Pieces() []P {
	return slices.Clone(c.contents)
}

// CopyPiece returns an independent copy of the stack
func (c *MultiCell[L, P]) CopyPiece() []P {
	return c.CopyContents()
}

func (c *MultiCell[L, P]) CopyContents() []P {
	if len(c.contents) == 0 {
		return nil
	}
	out := make([]P, len(c.contents))
	for i, p := range c.contents {
		out[i] = copyPiece(p)
	}
	return out
}

func (c *MultiCell[L, P]) SetContents(pieces []P) error {
	c.contents = slices.Clone(pieces)
	return nil
}

// Equal reports whether both cells share location and contents
func (c *MultiCell[L, P]) Equal(other Cell[L, P]) bool {
	return other != nil && c.location == other.Location() && slices.Equal(c.contents, other.Pieces())
}

// String shows the stack bottom first, or the empty glyph
func (c *MultiCell[L, P]) String() string {
	if len(c.contents) == 0 {
		return c.empty
	}
	parts := make([]string, len(c.contents))
	for i, p := range c.contents {
		parts[i] = fmt.Sprint(p)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (c *MultiCell[L, P]) index(i int) (int, error) {
	n := len(c.contents)
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("%w: %d at %v", ErrIndexOutOfRange, i, c.location)
	}
	return idx, nil
}

func (c *MultiCell[L, P]) bounds(i, j int) (int, int) {
	n := len(c.contents)
	clamp := func(x int) int {
		if x < 0 {
			x += n
		}
		return max(0, min(x, n))
	}
	i, j = clamp(i), clamp(j)
	if j < i {
		j = i
	}
	return i, j
}

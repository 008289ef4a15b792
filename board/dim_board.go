package board

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DimBoard is a rectangular board in any number of dimensions. Locations run
// from 1 to the size of each axis.
type DimBoard[P comparable] struct {
	*Board[Coordinate, P]
	dims []int
}

// NewDimBoard builds a board with a cell at every coordinate of the grid
func NewDimBoard[P comparable](dims []int, opts ...Option[Coordinate, P]) (*DimBoard[P], error) {
	if len(dims) == 0 || len(dims) > MaxDimensions {
		return nil, fmt.Errorf("%w: %d axes", ErrInvalidDimensions, len(dims))
	}
	for _, size := range dims {
		if size < 1 {
			return nil, fmt.Errorf("%w: axis size %d", ErrInvalidDimensions, size)
		}
	}

	b, err := New(gridLocations(dims), opts...)
	if err != nil {
		return nil, err
	}
	b.kind = "DimBoard"
	return &DimBoard[P]{Board: b, dims: slices.Clone(dims)}, nil
}

// gridLocations lists every coordinate of the grid, last axis fastest
func gridLocations(dims []int) []Coordinate {
	total := 1
	for _, size := range dims {
		total *= size
	}
	locs := make([]Coordinate, 0, total)
	current := make([]int, len(dims))
	for i := range current {
		current[i] = 1
	}
	for {
		locs = append(locs, C(current...))
		axis := len(dims) - 1
		for axis >= 0 {
			current[axis]++
			if current[axis] <= dims[axis] {
				break
			}
			current[axis] = 1
			axis--
		}
		if axis < 0 {
			return locs
		}
	}
}

// Copy returns an independent board with the same shape and pieces
func (d *DimBoard[P]) Copy() *DimBoard[P] {
	return &DimBoard[P]{Board: d.Board.Clone(), dims: slices.Clone(d.dims)}
}

// Dimensions returns the size of each axis
func (d *DimBoard[P]) Dimensions() []int {
	return slices.Clone(d.dims)
}

// InBounds reports whether c lies on the grid
func (d *DimBoard[P]) InBounds(c Coordinate) bool {
	if c.Dims() != len(d.dims) {
		return false
	}
	for i, size := range d.dims {
		if v := c.At(i); v < 1 || v > size {
			return false
		}
	}
	return true
}

// Neighbors returns the on-board coordinates next to c. Without diagonal
// only coordinates differing along a single axis are included.
func (d *DimBoard[P]) Neighbors(c Coordinate, diagonal bool) ([]Coordinate, error) {
	if c.Dims() != len(d.dims) {
		return nil, fmt.Errorf("%w: %v on a %d-dimensional board", ErrDimensionMismatch, c, len(d.dims))
	}
	var out []Coordinate
	for _, delta := range unitOffsets(len(d.dims), diagonal) {
		n, err := c.Add(delta)
		if err != nil {
			return nil, err
		}
		if d.InBounds(n) && d.Has(n) {
			out = append(out, n)
		}
	}
	return out, nil
}

// unitOffsets lists the non-zero offsets with components in -1..1
func unitOffsets(dims int, diagonal bool) []Coordinate {
	var out []Coordinate
	current := make([]int, dims)
	for i := range current {
		current[i] = -1
	}
	for {
		moved := 0
		for _, v := range current {
			if v != 0 {
				moved++
			}
		}
		if moved == 1 || (diagonal && moved > 1) {
			out = append(out, C(current...))
		}
		axis := dims - 1
		for axis >= 0 {
			current[axis]++
			if current[axis] <= 1 {
				break
			}
			current[axis] = -1
			axis--
		}
		if axis < 0 {
			return out
		}
	}
}

// String is a debugging description such as "<DimBoard with 3x3 SingleCells>"
func (d *DimBoard[P]) String() string {
	sizes := make([]string, len(d.dims))
	for i, size := range d.dims {
		sizes[i] = strconv.Itoa(size)
	}
	return fmt.Sprintf("<%s with %s %s>", d.kind, strings.Join(sizes, "x"), d.cellKindPlural())
}

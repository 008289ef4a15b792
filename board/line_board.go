package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Spot is a location on a LineBoard: either a numbered position on the line
// or a named cell off it, such as a bar or a home.
type Spot struct {
	Pos  int
	Name string
}

// At returns the spot for a numbered position
func At(pos int) Spot {
	return Spot{Pos: pos}
}

// Named returns the spot for a named cell
func Named(name string) Spot {
	return Spot{Name: name}
}

// ParseSpot reads "4" as a position and anything else as a name
func ParseSpot(s string) (Spot, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Spot{}, fmt.Errorf("%w: empty spot", ErrInvalidLocation)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return At(n), nil
	}
	return Named(s), nil
}

// IsNamed reports whether the spot is off the numbered line
func (s Spot) IsNamed() bool {
	return s.Name != ""
}

// Add moves a numbered spot along the line. Named spots have no arithmetic.
func (s Spot) Add(delta Spot) (Spot, error) {
	if s.IsNamed() || delta.IsNamed() {
		return Spot{}, fmt.Errorf("%w: cannot offset %v by %v", ErrInvalidLocation, s, delta)
	}
	return At(s.Pos + delta.Pos), nil
}

func (s Spot) String() string {
	if s.IsNamed() {
		return s.Name
	}
	return strconv.Itoa(s.Pos)
}

// LineBoard is a line of cells numbered from 1, plus optional named cells off
// the line. Cells hold stacks unless a cell factory says otherwise.
type LineBoard[P comparable] struct {
	*Board[Spot, P]
	length int
}

// NewLineBoard builds a line of length cells and the named extra cells
func NewLineBoard[P comparable](length int, extraCells []string, opts ...Option[Spot, P]) (*LineBoard[P], error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: line length %d", ErrInvalidDimensions, length)
	}
	locs := make([]Spot, length)
	for i := range locs {
		locs[i] = At(i + 1)
	}

	opts = append([]Option[Spot, P]{WithCellFactory(MultiCells[Spot, P]())}, opts...)
	b, err := New(locs, opts...)
	if err != nil {
		return nil, err
	}
	b.kind = "LineBoard"
	for _, name := range extraCells {
		if name == "" {
			return nil, fmt.Errorf("%w: empty extra cell name", ErrInvalidLocation)
		}
		if strings.TrimSpace(name) != name {
			return nil, fmt.Errorf("%w: extra cell %q has surrounding spaces", ErrInvalidLocation, name)
		}
		if _, err := strconv.Atoi(name); err == nil {
			return nil, fmt.Errorf("%w: extra cell %q looks like a position", ErrInvalidLocation, name)
		}
		if err := b.AddExtra(Named(name)); err != nil {
			return nil, err
		}
	}
	return &LineBoard[P]{Board: b, length: length}, nil
}

// Copy returns an independent board with the same length, cells, extra
// cells and move policy
func (l *LineBoard[P]) Copy() *LineBoard[P] {
	return &LineBoard[P]{Board: l.Board.Clone(), length: l.length}
}

// Length returns the number of cells on the line
func (l *LineBoard[P]) Length() int {
	return l.length
}

// ExtraCells returns the names of the cells off the line
func (l *LineBoard[P]) ExtraCells() []string {
	var names []string
	for _, spot := range l.ExtraLocations() {
		names = append(names, spot.Name)
	}
	return names
}

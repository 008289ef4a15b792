package engine

import (
	"fmt"

	"github.com/wricardo/tgames/board"
)

// surface is the string-addressed view of a board that the engine drives.
// Locations are "2,3" on grids and stacks, "4" or a cell name on lines.
type surface interface {
	locations() []string
	cell(loc string) (CellState, error)
	place(loc, piece string) error
	fill(loc string, pieces []string) error
	stack(loc, piece string) ([]string, error)
	remove(loc string, piece ...string) (string, error)
	move(from, to string, piece ...string) ([]string, error)
	displace(from, to string, piece ...string) ([]string, error)
	safeDisplace(from, to string, piece ...string) ([]string, error)
	safe(loc, piece string) (bool, error)
	offset(loc, delta string) (string, error)
	neighbors(loc string, diagonal bool) ([]string, error)
	clear()
	copy() surface
	String() string
}

// boardSurface adapts a typed board to string locations
type boardSurface[L comparable] struct {
	b        *board.Board[L, string]
	parse    func(string) (L, error)
	format   func(L) string
	placeFn  func(L, string) error
	near     func(L, bool) ([]L, error)
	describe func() string
	clone    func() surface
}

func newGridSurface(d *board.DimBoard[string]) surface {
	return &boardSurface[board.Coordinate]{
		b:        d.Board,
		parse:    board.ParseCoordinate,
		format:   board.Coordinate.Key,
		placeFn:  d.Place,
		near:     d.Neighbors,
		describe: d.String,
		clone:    func() surface { return newGridSurface(d.Copy()) },
	}
}

func newStackSurface(m *board.MultiBoard[string]) surface {
	return &boardSurface[board.Coordinate]{
		b:        m.Board,
		parse:    board.ParseCoordinate,
		format:   board.Coordinate.Key,
		placeFn:  m.Place,
		near:     m.Neighbors,
		describe: m.String,
		clone:    func() surface { return newStackSurface(m.Copy()) },
	}
}

func newLineSurface(l *board.LineBoard[string]) surface {
	return &boardSurface[board.Spot]{
		b:       l.Board,
		parse:   board.ParseSpot,
		format:  board.Spot.String,
		placeFn: l.Place,
		near: func(s board.Spot, _ bool) ([]board.Spot, error) {
			if s.IsNamed() {
				return nil, fmt.Errorf("%w: %s is off the line", board.ErrInvalidLocation, s)
			}
			var out []board.Spot
			for _, n := range []board.Spot{board.At(s.Pos - 1), board.At(s.Pos + 1)} {
				if l.Has(n) {
					out = append(out, n)
				}
			}
			return out, nil
		},
		describe: l.String,
		clone:    func() surface { return newLineSurface(l.Copy()) },
	}
}

func (s *boardSurface[L]) loc(raw string) (L, error) {
	l, err := s.parse(raw)
	if err != nil {
		return l, err
	}
	if !s.b.Has(l) {
		return l, fmt.Errorf("%w: %s", board.ErrLocationNotFound, raw)
	}
	return l, nil
}

func (s *boardSurface[L]) pair(from, to string) (L, L, error) {
	f, err := s.loc(from)
	if err != nil {
		return f, f, err
	}
	t, err := s.loc(to)
	return f, t, err
}

func (s *boardSurface[L]) locations() []string {
	locs := s.b.Locations()
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = s.format(l)
	}
	return out
}

func (s *boardSurface[L]) cell(raw string) (CellState, error) {
	l, err := s.loc(raw)
	if err != nil {
		return CellState{}, err
	}
	c, err := s.b.Cell(l)
	if err != nil {
		return CellState{}, err
	}
	return CellState{Location: s.format(l), Pieces: c.Pieces(), Extra: s.b.IsExtra(l)}, nil
}

func (s *boardSurface[L]) place(raw, piece string) error {
	l, err := s.loc(raw)
	if err != nil {
		return err
	}
	return s.placeFn(l, piece)
}

func (s *boardSurface[L]) fill(raw string, pieces []string) error {
	l, err := s.loc(raw)
	if err != nil {
		return err
	}
	return s.b.Fill(l, pieces...)
}

func (s *boardSurface[L]) stack(raw, piece string) ([]string, error) {
	l, err := s.loc(raw)
	if err != nil {
		return nil, err
	}
	return s.b.Stack(l, piece)
}

func (s *boardSurface[L]) remove(raw string, piece ...string) (string, error) {
	l, err := s.loc(raw)
	if err != nil {
		return "", err
	}
	return s.b.Remove(l, piece...)
}

func (s *boardSurface[L]) move(from, to string, piece ...string) ([]string, error) {
	f, t, err := s.pair(from, to)
	if err != nil {
		return nil, err
	}
	return s.b.Move(f, t, piece...)
}

func (s *boardSurface[L]) displace(from, to string, piece ...string) ([]string, error) {
	f, t, err := s.pair(from, to)
	if err != nil {
		return nil, err
	}
	return s.b.Displace(f, t, piece...)
}

func (s *boardSurface[L]) safeDisplace(from, to string, piece ...string) ([]string, error) {
	f, t, err := s.pair(from, to)
	if err != nil {
		return nil, err
	}
	return s.b.SafeDisplace(f, t, piece...)
}

func (s *boardSurface[L]) safe(raw, piece string) (bool, error) {
	l, err := s.loc(raw)
	if err != nil {
		return false, err
	}
	return s.b.Safe(l, piece)
}

func (s *boardSurface[L]) offset(raw, delta string) (string, error) {
	l, err := s.loc(raw)
	if err != nil {
		return "", err
	}
	d, err := s.parse(delta)
	if err != nil {
		return "", err
	}
	c, err := s.b.Offset(l, d)
	if err != nil {
		return "", err
	}
	return s.format(c.Location()), nil
}

func (s *boardSurface[L]) neighbors(raw string, diagonal bool) ([]string, error) {
	l, err := s.loc(raw)
	if err != nil {
		return nil, err
	}
	near, err := s.near(l, diagonal)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(near))
	for i, n := range near {
		out[i] = s.format(n)
	}
	return out, nil
}

func (s *boardSurface[L]) clear() {
	s.b.Clear()
}

func (s *boardSurface[L]) copy() surface {
	return s.clone()
}

func (s *boardSurface[L]) String() string {
	return s.describe()
}

// buildSurface creates an empty board for a config. Setup pieces are not placed.
func buildSurface(config *BoardConfig) (surface, error) {
	switch config.Kind {
	case KindGrid:
		opts := []board.Option[board.Coordinate, string]{
			board.WithMovePolicy(gridPolicy(config.MoveRule)),
		}
		if config.CellType == MultiCell {
			opts = append(opts, board.WithCellFactory(board.MultiCells[board.Coordinate, string]()))
		}
		d, err := board.NewDimBoard(config.Dimensions, opts...)
		if err != nil {
			return nil, err
		}
		return newGridSurface(d), nil

	case KindLine:
		opts := []board.Option[board.Spot, string]{
			board.WithMovePolicy(linePolicy(config.MoveRule)),
		}
		if config.CellType == SingleCell {
			opts = append(opts, board.WithCellFactory(board.SingleCells[board.Spot, string]()))
		}
		l, err := board.NewLineBoard(config.Length, config.ExtraCells, opts...)
		if err != nil {
			return nil, err
		}
		return newLineSurface(l), nil

	case KindStack:
		m, err := board.NewMultiBoard[string](config.Dimensions)
		if err != nil {
			return nil, err
		}
		return newStackSurface(m), nil
	}
	return nil, fmt.Errorf("%w: unknown board kind %q", ErrInvalidConfig, config.Kind)
}

func gridPolicy(rule MoveRule) board.MovePolicy[board.Coordinate, string] {
	if rule == RuleSafeDisplace {
		return board.SafeCapture[board.Coordinate, string]()
	}
	return board.DisplaceCapture[board.Coordinate, string]()
}

func linePolicy(rule MoveRule) board.MovePolicy[board.Spot, string] {
	if rule == RuleSafeDisplace {
		return board.SafeCapture[board.Spot, string]()
	}
	return board.DisplaceCapture[board.Spot, string]()
}

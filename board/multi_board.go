package board

// MultiBoard is a grid of stacks. A piece moving onto a stack topped by a
// different piece captures the whole stack.
type MultiBoard[P comparable] struct {
	*DimBoard[P]
}

// NewMultiBoard builds a grid of empty stacks
func NewMultiBoard[P comparable](dims []int) (*MultiBoard[P], error) {
	d, err := NewDimBoard(dims,
		WithCellFactory(MultiCells[Coordinate, P]()),
		WithMovePolicy(StackCapture[Coordinate, P]()),
	)
	if err != nil {
		return nil, err
	}
	d.kind = "MultiBoard"
	return &MultiBoard[P]{DimBoard: d}, nil
}

// Place puts piece on top of the stack at loc
func (m *MultiBoard[P]) Place(loc Coordinate, piece P) error {
	_, err := m.Stack(loc, piece)
	return err
}

// Pile returns the stack at loc, bottom first
func (m *MultiBoard[P]) Pile(loc Coordinate) ([]P, error) {
	cell, err := m.Cell(loc)
	if err != nil {
		return nil, err
	}
	return cell.Pieces(), nil
}

// Copy returns a board with the same dimensions and independent stacks
func (m *MultiBoard[P]) Copy() *MultiBoard[P] {
	return &MultiBoard[P]{DimBoard: m.DimBoard.Copy()}
}

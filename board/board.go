package board

import (
	"fmt"
	"iter"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// MovePolicy moves a piece between two cells of a board and returns whatever
// was captured. Games pick a policy instead of overriding Move.
type MovePolicy[L comparable, P comparable] func(b *Board[L, P], start, end L, piece ...P) ([]P, error)

// DisplaceCapture moves with capture by replacement
func DisplaceCapture[L comparable, P comparable]() MovePolicy[L, P] {
	return func(b *Board[L, P], start, end L, piece ...P) ([]P, error) {
		return b.Displace(start, end, piece...)
	}
}

// SafeCapture moves with capture by replacement unless the destination is safe
func SafeCapture[L comparable, P comparable]() MovePolicy[L, P] {
	return func(b *Board[L, P], start, end L, piece ...P) ([]P, error) {
		return b.SafeDisplace(start, end, piece...)
	}
}

// StackCapture moves the top of one stack onto another, capturing the
// destination stack when its top piece differs from the mover
func StackCapture[L comparable, P comparable]() MovePolicy[L, P] {
	return func(b *Board[L, P], start, end L, piece ...P) ([]P, error) {
		return b.StackMove(start, end, piece...)
	}
}

// Offsetter is implemented by location types that support arithmetic.
// Boards keyed by such a type get Offset without further setup.
type Offsetter[L any] interface {
	Add(other L) (L, error)
}

// Option configures a board at construction
type Option[L comparable, P comparable] func(*Board[L, P])

// WithCellFactory sets the kind of cell the board is built from
func WithCellFactory[L comparable, P comparable](factory CellFactory[L, P]) Option[L, P] {
	return func(b *Board[L, P]) {
		b.newCell = factory
	}
}

// WithMovePolicy sets the rule Move uses
func WithMovePolicy[L comparable, P comparable](policy MovePolicy[L, P]) Option[L, P] {
	return func(b *Board[L, P]) {
		b.move = policy
	}
}

// WithOffset sets the location arithmetic used by Offset
func WithOffset[L comparable, P comparable](fn func(location, delta L) (L, error)) Option[L, P] {
	return func(b *Board[L, P]) {
		b.offset = fn
	}
}

// Board maps locations to cells.
//
// The set of locations is fixed when the board is built, apart from extra
// cells added with AddExtra and cells removed with Delete. A Board is not safe
// for concurrent use.
type Board[L comparable, P comparable] struct {
	kind    string
	cells   map[L]Cell[L, P]
	order   []L
	extra   mapset.Set[L]
	newCell CellFactory[L, P]
	move    MovePolicy[L, P]
	offset  func(location, delta L) (L, error)
}

// New builds a board with one cell per location. Cells are single-piece and
// moves displace unless options say otherwise.
func New[L comparable, P comparable](locations []L, opts ...Option[L, P]) (*Board[L, P], error) {
	b := &Board[L, P]{
		kind:    "Board",
		cells:   make(map[L]Cell[L, P], len(locations)),
		order:   make([]L, 0, len(locations)),
		extra:   mapset.New[L](),
		newCell: SingleCells[L, P](),
		move:    DisplaceCapture[L, P](),
	}
	var zero L
	if _, ok := any(zero).(Offsetter[L]); ok {
		b.offset = func(location, delta L) (L, error) {
			return any(location).(Offsetter[L]).Add(delta)
		}
	}
	for _, opt := range opts {
		opt(b)
	}

	for _, loc := range locations {
		if err := b.addCell(loc); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Board[L, P]) addCell(loc L) error {
	if _, exists := b.cells[loc]; exists {
		return fmt.Errorf("%w: duplicate location %v", ErrInvalidLocation, loc)
	}
	b.cells[loc] = b.newCell(loc)
	b.order = append(b.order, loc)
	return nil
}

// AddExtra adds an empty cell outside the main layout. Extra cells are
// never safe from capture.
func (b *Board[L, P]) AddExtra(loc L) error {
	if err := b.addCell(loc); err != nil {
		return err
	}
	b.extra.Put(loc)
	return nil
}

// Len returns the number of cells, extra cells included
func (b *Board[L, P]) Len() int {
	return len(b.order)
}

// Has reports whether the board has a cell at loc
func (b *Board[L, P]) Has(loc L) bool {
	_, ok := b.cells[loc]
	return ok
}

// Cell returns the cell at loc
func (b *Board[L, P]) Cell(loc L) (Cell[L, P], error) {
	cell, ok := b.cells[loc]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrLocationNotFound, loc)
	}
	return cell, nil
}

// Get returns the cell at loc and whether it exists
func (b *Board[L, P]) Get(loc L) (Cell[L, P], bool) {
	cell, ok := b.cells[loc]
	return cell, ok
}

// Delete removes the cell at loc from the board
func (b *Board[L, P]) Delete(loc L) error {
	if _, ok := b.cells[loc]; !ok {
		return fmt.Errorf("%w: %v", ErrLocationNotFound, loc)
	}
	delete(b.cells, loc)
	b.order = slices.DeleteFunc(b.order, func(l L) bool { return l == loc })
	b.extra.Remove(loc)
	return nil
}

// Locations returns every location in construction order
func (b *Board[L, P]) Locations() []L {
	return slices.Clone(b.order)
}

// All iterates over the cells in construction order
func (b *Board[L, P]) All() iter.Seq2[L, Cell[L, P]] {
	return func(yield func(L, Cell[L, P]) bool) {
		for _, loc := range b.order {
			if !yield(loc, b.cells[loc]) {
				return
			}
		}
	}
}

// IsExtra reports whether loc is an extra cell
func (b *Board[L, P]) IsExtra(loc L) bool {
	return b.extra.Has(loc)
}

// ExtraLocations returns the extra cells in the order they were added
func (b *Board[L, P]) ExtraLocations() []L {
	var out []L
	for _, loc := range b.order {
		if b.extra.Has(loc) {
			out = append(out, loc)
		}
	}
	return out
}

// Clear removes every piece from the board
func (b *Board[L, P]) Clear() {
	for _, cell := range b.cells {
		cell.Clear()
	}
}

// CopyPieces copies the contents of every cell of source into the matching
// cell here. On error the board is left as it was.
func (b *Board[L, P]) CopyPieces(source *Board[L, P]) error {
	for _, loc := range source.order {
		if _, ok := b.cells[loc]; !ok {
			return fmt.Errorf("%w: %v", ErrLocationNotFound, loc)
		}
	}
	saved := make(map[L][]P, len(source.order))
	for _, loc := range source.order {
		cell := b.cells[loc]
		saved[loc] = cell.Pieces()
		if err := cell.SetContents(source.cells[loc].CopyContents()); err != nil {
			for restore, pieces := range saved {
				b.cells[restore].SetContents(pieces)
			}
			return fmt.Errorf("copying %v: %w", loc, err)
		}
	}
	return nil
}

// Clone builds a board of the same shape, cell kind and rules, then copies
// the pieces into it. It panics if the cell factory builds cells that cannot
// hold the contents of the cells it built before.
func (b *Board[L, P]) Clone() *Board[L, P] {
	clone := &Board[L, P]{
		kind:    b.kind,
		cells:   make(map[L]Cell[L, P], len(b.order)),
		order:   make([]L, 0, len(b.order)),
		extra:   mapset.New[L](),
		newCell: b.newCell,
		move:    b.move,
		offset:  b.offset,
	}
	for _, loc := range b.order {
		clone.cells[loc] = b.newCell(loc)
		clone.order = append(clone.order, loc)
	}
	b.extra.Each(func(loc L) {
		clone.extra.Put(loc)
	})
	for _, loc := range b.order {
		if err := clone.cells[loc].SetContents(b.cells[loc].CopyContents()); err != nil {
			panic(fmt.Sprintf("board: cloning %v: %v", loc, err))
		}
	}
	return clone
}

// Equal reports whether both boards have the same locations holding the
// same pieces
func (b *Board[L, P]) Equal(other *Board[L, P]) bool {
	if other == nil || len(b.cells) != len(other.cells) {
		return false
	}
	for loc, cell := range b.cells {
		if !CellsEqual(cell, other.cells[loc]) {
			return false
		}
	}
	return true
}

// String is a debugging description such as "<Board with 5 SingleCells>"
func (b *Board[L, P]) String() string {
	return fmt.Sprintf("<%s with %d %s>", b.kind, len(b.order), b.cellKindPlural())
}

func (b *Board[L, P]) cellKindPlural() string {
	if len(b.order) == 0 {
		return "cells"
	}
	return cellKind(b.cells[b.order[0]]) + "s"
}

// Place clears the cell at loc and puts piece in it
func (b *Board[L, P]) Place(loc L, piece P) error {
	cell, err := b.Cell(loc)
	if err != nil {
		return err
	}
	cell.Clear()
	cell.AddPiece(piece)
	return nil
}

// Fill replaces the contents of the cell at loc with pieces
func (b *Board[L, P]) Fill(loc L, pieces ...P) error {
	cell, err := b.Cell(loc)
	if err != nil {
		return err
	}
	return cell.SetContents(pieces)
}

// Stack adds piece to the cell at loc without clearing it and returns
// anything pushed out
func (b *Board[L, P]) Stack(loc L, piece P) ([]P, error) {
	cell, err := b.Cell(loc)
	if err != nil {
		return nil, err
	}
	return cell.AddPiece(piece), nil
}

// Remove takes a piece out of the cell at loc, the top one if none is named
func (b *Board[L, P]) Remove(loc L, piece ...P) (P, error) {
	cell, err := b.Cell(loc)
	if err != nil {
		var zero P
		return zero, err
	}
	return cell.RemovePiece(piece...)
}

// Displace moves a piece from start to end, replacing whatever was at end.
// It returns the previous contents of end.
func (b *Board[L, P]) Displace(start, end L, piece ...P) ([]P, error) {
	from, to, err := b.pair(start, end)
	if err != nil {
		return nil, err
	}
	captured := to.Pieces()
	mover, err := from.RemovePiece(piece...)
	if err != nil {
		return nil, err
	}
	to.Clear()
	to.AddPiece(mover)
	return captured, nil
}

// Move moves a piece using the board's move policy
func (b *Board[L, P]) Move(start, end L, piece ...P) ([]P, error) {
	return b.move(b, start, end, piece...)
}

// Offset returns the cell at loc shifted by delta
func (b *Board[L, P]) Offset(loc, delta L) (Cell[L, P], error) {
	if b.offset == nil {
		return nil, ErrNoOffset
	}
	target, err := b.offset(loc, delta)
	if err != nil {
		return nil, err
	}
	return b.Cell(target)
}

// Safe reports whether the cell at loc is protected from capture by piece:
// it must not hold piece, must hold more than one piece and must not be
// an extra cell
func (b *Board[L, P]) Safe(loc L, piece P) (bool, error) {
	cell, err := b.Cell(loc)
	if err != nil {
		return false, err
	}
	return b.safe(cell, piece), nil
}

func (b *Board[L, P]) safe(cell Cell[L, P], piece P) bool {
	return !cell.Contains(piece) && cell.Len() > 1 && !b.extra.Has(cell.Location())
}

// SafeDisplace moves a piece like Displace unless end is safe, in which case
// start is restored and ErrUnsafeCapture is returned. Moving onto an empty
// cell, an extra cell or a cell already holding the mover captures nothing.
func (b *Board[L, P]) SafeDisplace(start, end L, piece ...P) ([]P, error) {
	from, to, err := b.pair(start, end)
	if err != nil {
		return nil, err
	}
	before := from.Pieces()
	mover, err := from.RemovePiece(piece...)
	if err != nil {
		return nil, err
	}
	if b.safe(to, mover) {
		if rerr := from.SetContents(before); rerr != nil {
			return nil, rerr
		}
		return nil, fmt.Errorf("%w %v", ErrUnsafeCapture, end)
	}

	if to.Contains(mover) || to.Len() == 0 || b.extra.Has(end) {
		to.AddPiece(mover)
		return nil, nil
	}
	captured := to.Pieces()
	to.Clear()
	to.AddPiece(mover)
	return captured, nil
}

// StackMove moves the top piece of start onto end. When end holds a stack
// topped by a different piece, that stack is captured and end is left
// holding only the mover. A named piece must be the top of start.
func (b *Board[L, P]) StackMove(start, end L, piece ...P) ([]P, error) {
	from, to, err := b.pair(start, end)
	if err != nil {
		return nil, err
	}
	top, ok := from.Peek()
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrEmptyCell, start)
	}
	if len(piece) > 0 && piece[0] != top {
		return nil, fmt.Errorf("%w: %v is not on top at %v", ErrPieceNotFound, piece[0], start)
	}
	mover, err := from.RemovePiece()
	if err != nil {
		return nil, err
	}
	var captured []P
	if top, ok := to.Peek(); ok && top != mover {
		captured = to.Pieces()
		to.Clear()
	}
	to.AddPiece(mover)
	return captured, nil
}

func (b *Board[L, P]) pair(start, end L) (Cell[L, P], Cell[L, P], error) {
	if start == end {
		return nil, nil, fmt.Errorf("%w: move from %v to itself", ErrInvalidLocation, start)
	}
	from, err := b.Cell(start)
	if err != nil {
		return nil, nil, err
	}
	to, err := b.Cell(end)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

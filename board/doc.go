// Package board provides generic playing-surface containers for text games.
//
// A board is a mapping from comparable locations to cells. A cell holds either
// a single piece (SingleCell) or an ordered stack of pieces (MultiCell). The
// package supplies:
//   - Coordinate: an immutable n-dimensional integer vector used as a grid key
//   - Board: the generic location → cell container with displace capture,
//     safe displacement and pluggable move policies
//   - DimBoard: an n-dimensional grid of Coordinates starting at 1 on every axis
//   - LineBoard: a 1..N line of Spots with optional named cells off the line
//   - MultiBoard: a grid of stacks that captures a stack of a different kind
//
// Usage:
//
//	grid, err := board.NewDimBoard[string]([]int{8, 8})
//	if err != nil {
//		log.Fatal(err)
//	}
//	grid.Place(board.C(2, 5), "P")
//	captured, err := grid.Move(board.C(2, 5), board.C(3, 5))
//
// Game rules customise a board through options rather than subclassing:
// WithCellFactory picks the cell variant, WithMovePolicy replaces the capture
// rule used by Move, and WithOffset supplies location arithmetic for Offset.
//
// Boards are not safe for concurrent mutation. Callers that share a board
// between goroutines must serialize access. Copy and Clone produce boards
// that share no mutable piece state with their source.
package board

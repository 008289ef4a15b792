package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/tgames/board"
)

// Move moves a piece using the configured move rule
func (e *BoardEngine) Move(from, to, piece string) ([]string, error) {
	captured, err := e.board.move(from, to, pieceArg(piece)...)
	e.afterMove(ActionMove, from, to, piece, captured, err)
	return captured, err
}

// Displace moves a piece with unconditional capture
func (e *BoardEngine) Displace(from, to, piece string) ([]string, error) {
	captured, err := e.board.displace(from, to, pieceArg(piece)...)
	e.afterMove(ActionDisplace, from, to, piece, captured, err)
	return captured, err
}

// SafeDisplace moves a piece unless the destination is safe from capture
func (e *BoardEngine) SafeDisplace(from, to, piece string) ([]string, error) {
	captured, err := e.board.safeDisplace(from, to, pieceArg(piece)...)
	e.afterMove(ActionSafeDisplace, from, to, piece, captured, err)
	return captured, err
}

// BulkMove executes moves in order and stops at the first failure. The
// returned records cover every attempted move.
func (e *BoardEngine) BulkMove(moves []MoveRequest) ([]MoveRecord, error) {
	if len(moves) > MaxBulkMoves {
		return nil, fmt.Errorf("%w: %d moves, max %d", ErrTooManyMoves, len(moves), MaxBulkMoves)
	}

	records := make([]MoveRecord, 0, len(moves))
	for _, m := range moves {
		_, err := e.Move(m.From, m.To, m.Piece)
		records = append(records, *e.GetLastMove())
		if err != nil {
			return records, err
		}
	}
	return records, nil
}

// Preview runs a move on a copy of the board and reports the outcome. The
// live board and history are untouched.
func (e *BoardEngine) Preview(from, to, piece string) (*MovePreview, error) {
	// Unknown locations are request errors rather than illegal moves
	if _, err := e.board.cell(from); err != nil {
		return nil, err
	}
	if _, err := e.board.cell(to); err != nil {
		return nil, err
	}

	scratch := e.board.copy()
	preview := &MovePreview{From: from, To: to, Piece: piece}

	captured, err := scratch.move(from, to, pieceArg(piece)...)
	if err != nil {
		preview.Reason = err.Error()
		return preview, nil
	}
	preview.Legal = true
	preview.Captured = captured
	for _, loc := range []string{from, to} {
		c, err := scratch.cell(loc)
		if err != nil {
			return nil, err
		}
		preview.After = append(preview.After, c)
	}
	return preview, nil
}

func (e *BoardEngine) afterMove(action, from, to, piece string, captured []string, err error) {
	switch {
	case err == nil:
		e.captured = append(e.captured, captured...)
		e.message = e.moveMessage(from, to, captured)
	case errors.Is(err, board.ErrUnsafeCapture):
		e.message = e.config.Messages.Blocked
		if e.message == "" {
			e.message = fmt.Sprintf("Cell %s is safe from capture", to)
		}
	default:
		e.message = fmt.Sprintf("Can't move from %s to %s: %v", from, to, err)
	}
	e.record(action, from, to, piece, captured, err)
}

func (e *BoardEngine) moveMessage(from, to string, captured []string) string {
	moved := fmt.Sprintf("Moved from %s to %s", from, to)
	if e.config.Messages.Moved != "" {
		moved = fmt.Sprintf(e.config.Messages.Moved, from, to)
	}
	if len(captured) == 0 {
		return moved
	}
	list := strings.Join(captured, ", ")
	if e.config.Messages.Captured != "" {
		return moved + ". " + fmt.Sprintf(e.config.Messages.Captured, list)
	}
	return moved + ". Captured " + list
}

// record appends an entry to the cumulative and current histories
func (e *BoardEngine) record(action, from, to, piece string, captured []string, err error) {
	entry := MoveRecord{
		ID:         uuid.NewString(),
		Action:     action,
		From:       from,
		To:         to,
		Piece:      piece,
		Captured:   captured,
		Success:    err == nil,
		MoveNumber: len(e.history) + 1,
		Timestamp:  time.Now().Unix(),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	e.history = append(e.history, entry)
	e.currentMoves = append(e.currentMoves, entry)
}

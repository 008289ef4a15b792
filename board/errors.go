package board

import "errors"

var (
	ErrDimensionMismatch = errors.New("coordinates have different dimensions")
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrInvalidLocation   = errors.New("invalid location")
	ErrLocationNotFound  = errors.New("location not found")
	ErrUnsafeCapture     = errors.New("attempt to capture safe cell")
	ErrPieceNotFound     = errors.New("piece not in cell")
	ErrEmptyCell         = errors.New("cell is empty")
	ErrTooManyPieces     = errors.New("too many pieces for cell")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrNoOffset          = errors.New("board has no location arithmetic")
)

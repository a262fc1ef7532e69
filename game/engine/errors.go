package engine

import "errors"

var (
	ErrOutOfBounds      = errors.New("coordinate out of bounds")
	ErrOverlap          = errors.New("cell already occupied")
	ErrInvalidPhase     = errors.New("operation not allowed in current phase")
	ErrUnknownShipKind  = errors.New("unknown ship kind")
	ErrInvalidSnapshot  = errors.New("invalid match snapshot")
	ErrInvalidDimension = errors.New("board dimensions must be positive")
	ErrFleetFull        = errors.New("fleet already has every ship of that kind")
	ErrFleetDoesNotFit  = errors.New("remaining fleet does not fit on the board")
)

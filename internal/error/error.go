package error

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds        = errors.New("coordinates out of grid bound")
	ErrAlreadyAttacked    = errors.New("position already attacked")
	ErrInvalidKind        = errors.New("invalid ship kind")
	ErrPlacementExhausted = errors.New("ship placement retries exhausted")
	ErrNoTargetsRemaining = errors.New("no targets remaining")
	ErrShipOutOfBounds    = errors.New("ship does not fit in the grid")
	ErrShipOverlap        = errors.New("ship overlaps another ship")
	ErrShipAlreadyPlaced  = errors.New("ship tiles already assigned")
	ErrNotPlayerTurn      = errors.New("not player turn")
	ErrNotComputerTurn    = errors.New("not computer turn")
	ErrGameFinished       = errors.New("game is finished")
	ErrUnknownStrategy    = errors.New("unknown attack strategy")
	ErrUnknownGame        = errors.New("game does not exist")
	ErrUnknownSession     = errors.New("session not found")
	ErrNoActiveGame       = errors.New("session has no active game")
	ErrCodeAbsent         = errors.New("incoming req payload must contain 'code' field")
	ErrCoordinatesAbsent  = errors.New("attack payload must contain 'x' and 'y' fields")
)

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrOutOfBounds, x, y)
}

func ErrDefenceGridPositionAlreadyHit(x, y int) error {
	return fmt.Errorf("%w in previous rounds\tx: %d\ty: %d", ErrAlreadyAttacked, x, y)
}

func ErrInvalidShipKind(kind int) error {
	return fmt.Errorf("%w: %d", ErrInvalidKind, kind)
}

func ErrInvalidOrientation(orientation int) error {
	return fmt.Errorf("%w: unknown orientation %d", ErrInvalidKind, orientation)
}

func ErrPlacementRetriesExhausted(kind string, attempts int) error {
	return fmt.Errorf("%w for %s after %d attempts", ErrPlacementExhausted, kind, attempts)
}

func ErrShipDoesNotFit(kind string, x, y int) error {
	return fmt.Errorf("%w\tship: %s\tx: %d\ty: %d", ErrShipOutOfBounds, kind, x, y)
}

func ErrShipsOverlap(kind, other string) error {
	return fmt.Errorf("%w\tship: %s\tother: %s", ErrShipOverlap, kind, other)
}

func ErrShipTilesAssigned(kind string) error {
	return fmt.Errorf("%w\tship: %s", ErrShipAlreadyPlaced, kind)
}

func ErrLayoutMissingShip(kind string) error {
	return fmt.Errorf("%w: layout has no entry for %s", ErrInvalidKind, kind)
}

func ErrLayoutDuplicateShip(kind string) error {
	return fmt.Errorf("%w: layout has more than one %s", ErrInvalidKind, kind)
}

func ErrAllPositionsAttacked() error {
	return fmt.Errorf("%w: every position of the grid has been attacked", ErrNoTargetsRemaining)
}

func ErrAttackerTurn(state string) error {
	return fmt.Errorf("%w\tstate: %s", ErrNotPlayerTurn, state)
}

func ErrComputerTurn(state string) error {
	return fmt.Errorf("%w\tstate: %s", ErrNotComputerTurn, state)
}

func ErrGameIsFinished(gameUuid, state string) error {
	return fmt.Errorf("%w\tuuid: %s\tstate: %s", ErrGameFinished, gameUuid, state)
}

func ErrAttackStrategyName(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrUnknownGame, gameUuid)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("%w, id: %s", ErrUnknownSession, sessionId)
}

func ErrSessionWithoutGame(sessionId string) error {
	return fmt.Errorf("%w, id: %s", ErrNoActiveGame, sessionId)
}

func ErrSignalCodeAbsent() error {
	return fmt.Errorf("%w", ErrCodeAbsent)
}

func ErrAttackCoordinatesAbsent(payload string) error {
	return fmt.Errorf("%w\tpayload: %s", ErrCoordinatesAbsent, payload)
}

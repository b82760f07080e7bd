package error

import (
	"errors"
	"fmt"
)

var (
	// Placement or shot would land outside the grid. Callers re-prompt or re-sample.
	ErrOutOfBounds = errors.New("out of grid bounds")

	// Random placement ran out of tries. Fatal to game setup.
	ErrPlacementExhausted = errors.New("could not place ship without overlap after max tries")

	// Every cell of the grid has already been fired upon.
	ErrNoTargetsRemaining = errors.New("no targets remaining")

	ErrGameOver      = errors.New("game is over")
	ErrInvalidPhase  = errors.New("operation not allowed in current game phase")
	ErrInvalidConfig = errors.New("invalid game configuration")
	ErrNotFound      = errors.New("not found")
)

func ErrPivotOutOfBounds(x, y int, orientation fmt.Stringer) error {
	return fmt.Errorf("%w: ship pivot leaves no room for a %s span\tx: %d\ty: %d", ErrOutOfBounds, orientation, x, y)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("%w: incoming x or y is out of game grid bound\tx: %d\ty: %d", ErrOutOfBounds, x, y)
}

func ErrPlacementExhaustedAfter(tries int) error {
	return fmt.Errorf("%w (tries: %d)", ErrPlacementExhausted, tries)
}

func ErrShipAlreadyPlaced() error {
	return fmt.Errorf("%w: friendly ship is already placed", ErrInvalidPhase)
}

func ErrShipNotPlaced() error {
	return fmt.Errorf("%w: friendly ship must be placed before firing", ErrInvalidPhase)
}

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("%w: game with this uuid does not exist, uuid: %s", ErrNotFound, gameUuid)
}

func ErrGameAlreadyExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid already exists, uuid: %s", gameUuid)
}

func ErrGameIsNil(gameUuid string) error {
	return fmt.Errorf("%w: game with this uuid is nil, uuid: %s", ErrNotFound, gameUuid)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("%w: session with this id does not exist, id: %s", ErrNotFound, sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("%w: session with this id is nil, id: %s", ErrNotFound, sessionId)
}

func ErrNoActiveGame() error {
	return fmt.Errorf("%w: session has no active game", ErrInvalidPhase)
}

func ErrInvalidOrientation(value string) error {
	return fmt.Errorf("invalid ship orientation %q; use V or H", value)
}

func ErrRevealNotAllowed(stage string) error {
	return fmt.Errorf("revealing the target is not allowed in stage: %s", stage)
}

func ErrConfigField(field string, value any, rule string) error {
	return fmt.Errorf("%w: %s=%v %s", ErrInvalidConfig, field, value, rule)
}

package connection

const (
	CodeSessionID uint8 = iota
	CodeCreateGame
	CodePlaceShip
	CodeStartGame
	CodeFire

	// Server pushed cell state change; one per painted cell
	CodeCellEvent

	CodeEndGame
	CodeGameState

	// Only answered in the dev stage
	CodeRevealTarget

	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}

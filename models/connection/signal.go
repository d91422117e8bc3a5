package connection

const (
	CodeSessionID uint8 = iota
	CodeCreateGame
	CodeAttack

	// Sent once for every shot the computer takes
	CodeComputerAttack

	// Both boards as the player is allowed to see them
	CodeBoardState
	CodeEndGame

	// Drops the current game and starts a fresh one
	CodeRematch
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

package connection

import (
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

type ReqCreateGame struct {
	// Empty means the server places the player's fleet at random
	Layout []mb.ShipPlacement `json:"layout,omitempty"`
}

// Both coordinates are required; a missing one must not read as 0.
type ReqAttack struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

package connection

import (
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

// Absent fields keep the server defaults.
type ReqCreateGame struct {
	Config *mb.ConfigOverride `json:"config,omitempty"`
}

type ReqPlaceShip struct {
	X           int            `json:"x"`
	Y           int            `json:"y"`
	Orientation mb.Orientation `json:"orientation"`
	Random      bool           `json:"random"`
}

type ReqFire struct {
	X int `json:"x"`
	Y int `json:"y"`
}

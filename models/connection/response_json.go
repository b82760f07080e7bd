package connection

import (
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid string    `json:"game_uuid"`
	Config   mb.Config `json:"config"`
}

type RespPlaceShip struct {
	Cells       []mb.Coordinates `json:"cells"`
	Orientation mb.Orientation   `json:"orientation"`
}

type RespEndGame struct {
	PlayerMatchStatus int `json:"player_match_status"`
	Score             int `json:"score"`
	ShotsFired        int `json:"shots_fired"`
}

type RespRevealTarget struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}

package api

import (
	"encoding/json"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/saeidalz13/battleship-solo/internal/config"
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

type RequestHandler interface {
	HandleCreateGame(gm mb.GameManager, defaults mb.Config, current *mb.Game, opts ...mb.GameOption) (*mb.Game, mc.Message[mc.RespCreateGame])
	HandlePlaceShip(game *mb.Game) mc.Message[mc.RespPlaceShip]
	HandleStartGame(game *mb.Game) mc.Message[mb.GameState]
	HandleFire(game *mb.Game) mc.Message[mb.TurnResult]
	HandleGameState(game *mb.Game) mc.Message[mb.GameState]
	HandleRevealTarget(game *mb.Game, stage string) mc.Message[mc.RespRevealTarget]
}

// Every incoming valid request has this structure: a code and an optional
// payload that depends on the code.
type Request struct {
	payload []byte
}

var _ RequestHandler = (*Request)(nil)

func NewRequest(payload ...[]byte) Request {
	if len(payload) == 0 {
		return Request{}
	}
	return Request{payload: payload[0]}
}

func decodePayload[T any](payload []byte) (T, error) {
	var msg mc.Message[T]
	err := json.Unmarshal(payload, &msg)
	return msg.Payload, err
}

// errorMessage maps an engine error to the text sent back to the client.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, cerr.ErrOutOfBounds):
		return "coordinates are outside of the grid"
	case errors.Is(err, cerr.ErrGameOver):
		return "the game is over"
	case errors.Is(err, cerr.ErrInvalidPhase):
		return "request is not allowed at this point of the game"
	case errors.Is(err, cerr.ErrInvalidConfig):
		return "invalid game configuration"
	case errors.Is(err, cerr.ErrPlacementExhausted):
		return "could not find room for the ship"
	default:
		return "failed to process the request"
	}
}

// HandleCreateGame starts a new game for the session. A game the session was
// already playing is dropped.
func (r Request) HandleCreateGame(gm mb.GameManager, defaults mb.Config, current *mb.Game, opts ...mb.GameOption) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)

	gameConfig := defaults
	if len(r.payload) != 0 {
		req, err := decodePayload[mc.ReqCreateGame](r.payload)
		if err != nil {
			resp.AddError(err.Error(), "invalid create game payload")
			return nil, resp
		}
		if req.Config != nil {
			gameConfig, err = req.Config.Apply(defaults)
			if err != nil {
				resp.AddError(err.Error(), errorMessage(err))
				return nil, resp
			}
		}
	}

	game, err := gm.CreateGame(gameConfig, opts...)
	if err != nil {
		resp.AddError(err.Error(), errorMessage(err))
		return nil, resp
	}
	if current != nil {
		gm.TerminateGame(current.Uuid())
	}

	resp.AddPayload(mc.RespCreateGame{GameUuid: game.Uuid(), Config: game.Config()})
	return game, resp
}

func (r Request) HandlePlaceShip(game *mb.Game) mc.Message[mc.RespPlaceShip] {
	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodePlaceShip)
	if game == nil {
		resp.AddError(cerr.ErrNoActiveGame().Error(), "create a game first")
		return resp
	}

	req, err := decodePayload[mc.ReqPlaceShip](r.payload)
	if err != nil {
		resp.AddError(err.Error(), "invalid place ship payload")
		return resp
	}

	if req.Random {
		err = game.PlaceFriendlyRandom()
	} else {
		err = game.PlaceFriendly(mb.NewCoordinates(req.X, req.Y), req.Orientation)
	}
	if err != nil {
		if errors.Is(err, cerr.ErrPlacementExhausted) {
			log.Error("friendly placement exhausted", "game", game.Uuid(), "err", err)
		}
		resp.AddError(err.Error(), errorMessage(err))
		return resp
	}

	ship := game.Friendly()
	resp.AddPayload(mc.RespPlaceShip{Cells: ship.Cells(), Orientation: ship.Orientation()})
	return resp
}

// HandleStartGame confirms the game is ready for the first shot.
func (r Request) HandleStartGame(game *mb.Game) mc.Message[mb.GameState] {
	resp := mc.NewMessage[mb.GameState](mc.CodeStartGame)
	if game == nil {
		resp.AddError(cerr.ErrNoActiveGame().Error(), "create a game first")
		return resp
	}
	if game.Phase() != mb.PhaseAwaitingPlayerShot {
		err := cerr.ErrShipNotPlaced()
		if game.Phase() == mb.PhaseGameOver {
			err = cerr.ErrGameOver
		}
		resp.AddError(err.Error(), errorMessage(err))
		return resp
	}

	resp.AddPayload(game.State())
	return resp
}

func (r Request) HandleFire(game *mb.Game) mc.Message[mb.TurnResult] {
	resp := mc.NewMessage[mb.TurnResult](mc.CodeFire)
	if game == nil {
		resp.AddError(cerr.ErrNoActiveGame().Error(), "create a game first")
		return resp
	}

	req, err := decodePayload[mc.ReqFire](r.payload)
	if err != nil {
		resp.AddError(err.Error(), "invalid fire payload")
		return resp
	}

	result, err := game.PlayTurn(mb.NewCoordinates(req.X, req.Y))
	if err != nil {
		resp.AddError(err.Error(), errorMessage(err))
		return resp
	}

	resp.AddPayload(result)
	return resp
}

func (r Request) HandleGameState(game *mb.Game) mc.Message[mb.GameState] {
	resp := mc.NewMessage[mb.GameState](mc.CodeGameState)
	if game == nil {
		resp.AddError(cerr.ErrNoActiveGame().Error(), "create a game first")
		return resp
	}

	resp.AddPayload(game.State())
	return resp
}

func (r Request) HandleRevealTarget(game *mb.Game, stage string) mc.Message[mc.RespRevealTarget] {
	resp := mc.NewMessage[mc.RespRevealTarget](mc.CodeRevealTarget)
	if stage != config.StageDev {
		resp.AddError(cerr.ErrRevealNotAllowed(stage).Error(), "not available")
		return resp
	}
	if game == nil {
		resp.AddError(cerr.ErrNoActiveGame().Error(), "create a game first")
		return resp
	}

	target := game.RevealTarget()
	resp.AddPayload(mc.RespRevealTarget{X: target.X, Y: target.Y})
	return resp
}

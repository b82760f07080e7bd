package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/saeidalz13/battleship-solo/db/sqlc"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

var upgrader = websocket.Upgrader{
	// good average time since this is not a high-latency operation such as video streaming
	HandshakeTimeout: time.Second * 5,

	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      *sqlc.AnalyticsManager
	stage          string
	gameDefaults   mb.Config
}

var _ http.Handler = (*RequestProcessor)(nil)

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	analytics *sqlc.AnalyticsManager,
	stage string,
	gameDefaults mb.Config,
) *RequestProcessor {
	return &RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		analytics:      analytics,
		stage:          stage,
		gameDefaults:   gameDefaults,
	}
}

func (rp *RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The upgrader writes the http error response itself
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("could not open websocket connection", "remote", r.RemoteAddr, "err", err)
		return
	}

	session := rp.sessionManager.GenerateNewSession(conn)
	log.Info("a new connection established", "session", session.Id(), "remote", conn.RemoteAddr().String())
	rp.processSessionRequests(session)
}

// processSessionRequests owns the session until its connection fails. The
// game of the session ends with it.
func (rp *RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()
	renderer := newSessionRenderer(rp.sessionManager, session)
	gameRenderer := mb.MultiRenderer{renderer, debugRenderer(sessionId)}

	defer func() {
		if game := session.Game(); game != nil {
			rp.gameManager.TerminateGame(game.Uuid())
		}
		if session.Conn() != nil {
			session.Conn().Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
		log.Info("session terminated", "session", sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// Retries were already spent on the connection
			break sessionLoop
		}

		code, err := rp.sessionManager.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		req := NewRequest(payload)
		var respMsg interface{}

		switch code {
		case mc.CodeCreateGame:
			game, msg := req.HandleCreateGame(rp.gameManager, rp.gameDefaults, session.Game(), mb.WithRenderer(gameRenderer))
			if game != nil {
				session.SetGame(game)
				log.Info("game created", "session", sessionId, "game", game.Uuid())
				if err := rp.analytics.IncrementGamesCreatedCount(context.Background()); err != nil {
					// analytics never end a game
					log.Error("failed to record created game", "game", game.Uuid(), "err", err)
				}
			}
			respMsg = msg

		case mc.CodePlaceShip:
			respMsg = req.HandlePlaceShip(session.Game())

		case mc.CodeStartGame:
			respMsg = req.HandleStartGame(session.Game())

		case mc.CodeFire:
			msg := req.HandleFire(session.Game())
			if renderer.Err() != nil {
				break sessionLoop
			}
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			if msg.Error == nil && msg.Payload.Phase == mb.PhaseGameOver {
				if !rp.endGame(session) {
					break sessionLoop
				}
			}
			continue sessionLoop

		case mc.CodeGameState:
			respMsg = req.HandleGameState(session.Game())

		case mc.CodeRevealTarget:
			respMsg = req.HandleRevealTarget(session.Game(), rp.stage)

		default:
			msg := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			msg.AddError("", "invalid code in the incoming payload")
			respMsg = msg
		}

		// Render events of the request go out before its response
		if renderer.Err() != nil {
			break sessionLoop
		}
		if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
			break sessionLoop
		}
	}
}

// endGame reports the final status to the client and records the match.
// It returns false when the connection failed.
func (rp *RequestProcessor) endGame(session *mc.Session) bool {
	game := session.Game()
	player := game.Player()

	msg := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
	msg.AddPayload(mc.RespEndGame{
		PlayerMatchStatus: game.Status(),
		Score:             player.Score(),
		ShotsFired:        player.ShotsFired(),
	})
	log.Info("game over",
		"session", session.Id(),
		"game", game.Uuid(),
		"status", game.Status(),
		"shots", player.ShotsFired(),
		"duration", time.Since(game.CreatedAt()).Round(time.Millisecond),
	)

	if err := rp.analytics.RecordMatchResult(context.Background(), game.Status(), player.ShotsFired()); err != nil {
		log.Error("failed to record match result", "game", game.Uuid(), "err", err)
	}

	return rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON) == nil
}

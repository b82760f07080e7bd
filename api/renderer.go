package api

import (
	"github.com/charmbracelet/log"

	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

// sessionRenderer streams every cell change of a game to the client as a
// CellEvent message. After the first failed write it drops the rest and the
// session loop ends on Err.
type sessionRenderer struct {
	sessionManager mc.SessionManager
	session        *mc.Session
	err            error
}

var _ mb.Renderer = (*sessionRenderer)(nil)

func newSessionRenderer(sessionManager mc.SessionManager, session *mc.Session) *sessionRenderer {
	return &sessionRenderer{
		sessionManager: sessionManager,
		session:        session,
	}
}

func (r *sessionRenderer) Render(event mb.CellEvent) {
	if r.err != nil {
		return
	}

	msg := mc.NewMessage[mb.CellEvent](mc.CodeCellEvent)
	msg.AddPayload(event)
	if err := r.sessionManager.WriteToSessionConn(r.session, msg, mc.MessageTypeJSON); err != nil {
		log.Error("failed to write cell event", "session", r.session.Id(), "err", err)
		r.err = err
	}
}

func (r *sessionRenderer) Err() error {
	return r.err
}

// debugRenderer logs every cell change of the session's game at debug level.
func debugRenderer(sessionId string) mb.Renderer {
	return mb.RendererFunc(func(event mb.CellEvent) {
		log.Debug("cell event", "session", sessionId, "x", event.Coordinates.X, "y", event.Coordinates.Y, "category", event.Category)
	})
}

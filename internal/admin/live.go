package admin

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/shortlistd/quizgate/internal/quiz"
	"github.com/shortlistd/quizgate/pkg/http/ws"
)

// LiveFeed pushes each recorded submission to connected admin dashboards so
// they update without polling.
type LiveFeed struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

var _ quiz.SubmissionNotifier = (*LiveFeed)(nil)

func NewLiveFeed(logger zerolog.Logger) *LiveFeed {
	return &LiveFeed{
		hub: ws.NewHub(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Admin dashboard is served same-origin; the capability token is
			// checked by RequireAdmin before the upgrade.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With().Str("component", "admin_live").Logger(),
	}
}

// NotifySubmission broadcasts a graded submission to all dashboards.
func (f *LiveFeed) NotifySubmission(sub quiz.Submission) {
	f.hub.Broadcast(ws.Message{Type: "submission.recorded", Payload: sub})
}

// HandleWS upgrades GET /v1/admin/live to a WebSocket and holds it open
// until the client disconnects. The feed is push-only; inbound frames are
// drained and discarded.
func (f *LiveFeed) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	f.hub.Register(conn)

	go func() {
		defer f.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

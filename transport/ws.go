package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"debate-arena/domain"
	"debate-arena/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// watchSession upgrades the request and attaches the connection to the
// session's broadcast set until the client goes away.
func (h *Handler) watchSession(hub *realtime.Hub, sendBuffer int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := domain.SessionID(c.Param("id"))
		session, err := h.debates.Session(id)
		if err != nil {
			writeError(c, err)
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Warn("websocket upgrade failed", "session_id", id, "err", err)
			return
		}

		conn := realtime.NewConn(ws, sendBuffer)
		go conn.WritePump()

		if err := hub.Subscribe(id, session.Topic, conn); err != nil {
			conn.Close()
			return
		}
		h.log.Info("observer attached", "session_id", id, "user_id", c.GetString(ctxUserID))

		// The read loop only watches for the client closing; observers
		// never send payloads over the socket.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}
		hub.Unsubscribe(id, conn)
		conn.Close()
		h.log.Info("observer detached", "session_id", id, "user_id", c.GetString(ctxUserID))
	}
}

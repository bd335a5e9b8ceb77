package transport

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"debate-arena/auth"
	"debate-arena/realtime"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Log        *slog.Logger
	Handler    *Handler
	Tokens     *auth.TokenManager
	Hub        *realtime.Hub
	SendBuffer int
	Debug      bool
}

func SetupRouter(deps RouterDeps) *gin.Engine {
	if !deps.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if deps.Debug {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())

	h := deps.Handler

	router.POST("/auth/register", h.register)
	router.POST("/auth/login", h.login)

	authed := router.Group("/", AuthMiddleware(deps.Tokens))
	{
		authed.POST("/sessions", h.createSession)
		authed.GET("/sessions/:id", h.getSession)
		authed.DELETE("/sessions/:id", h.closeSession)
		authed.POST("/sessions/:id/contributions", h.submitContribution)
		authed.GET("/sessions/:id/contributions", h.listContributions)
		authed.GET("/sessions/:id/transcript", h.getTranscript)
		authed.POST("/sessions/:id/eval", h.evaluateSession)
		authed.GET("/sessions/:id/ws", h.watchSession(deps.Hub, deps.SendBuffer))
		authed.POST("/queue", h.enqueue)
		authed.GET("/queue", h.queueStatus)
		authed.GET("/rankings", h.rankings)
		authed.GET("/search", h.searchTranscripts)
	}

	return router
}

// Package transport exposes the coordinator over REST and websocket
// endpoints.
package transport

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"debate-arena/auth"
	"debate-arena/domain"
	"debate-arena/matchmaking"
	"debate-arena/scoring"
	"debate-arena/services"
)

type Handler struct {
	log     *slog.Logger
	debates *services.DebateService
	auth    *auth.Service
	queue   *matchmaking.Queue
	table   *scoring.Table
}

func NewHandler(
	log *slog.Logger,
	debates *services.DebateService,
	authService *auth.Service,
	queue *matchmaking.Queue,
	table *scoring.Table,
) *Handler {
	return &Handler{log: log, debates: debates, auth: authService, queue: queue, table: table}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type participantPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type createSessionRequest struct {
	Topic        string               `json:"topic"`
	Participants []participantPayload `json:"participants"`
}

type submitRequest struct {
	Content string `json:"content"`
	Chat    bool   `json:"chat"`
}

type enqueueRequest struct {
	Topic string `json:"topic"`
}

type sessionResponse struct {
	ID             string               `json:"id"`
	Topic          string               `json:"topic"`
	Participants   []participantPayload `json:"participants"`
	TurnIndex      int                  `json:"turn_index"`
	Round          int                  `json:"round"`
	Active         bool                 `json:"active"`
	CurrentSpeaker string               `json:"current_speaker"`
}

func toSessionResponse(session domain.Session) sessionResponse {
	resp := sessionResponse{
		ID:    string(session.ID),
		Topic: session.Topic,
		Participants: lo.Map(session.Participants, func(p domain.Participant, _ int) participantPayload {
			return participantPayload{ID: string(p.ID), Username: p.Username}
		}),
		TurnIndex: session.TurnIndex,
		Round:     session.Round,
		Active:    session.Active,
	}
	if session.Active && len(session.Participants) > 0 {
		resp.CurrentSpeaker = session.CurrentSpeaker().Username
	}
	return resp
}

type contributionResponse struct {
	ID       string `json:"id"`
	SenderID string `json:"sender_id"`
	Content  string `json:"content"`
	Lang     string `json:"lang,omitempty"`
	Chat     bool   `json:"chat"`
	Seq      uint64 `json:"seq"`
}

func toContributionResponse(c domain.Contribution) contributionResponse {
	return contributionResponse{
		ID:       c.ID.String(),
		SenderID: string(c.SenderID),
		Content:  c.Content,
		Lang:     c.Lang,
		Chat:     c.Chat,
		Seq:      c.Seq,
	}
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Kind: "invalid_request", Detail: "malformed body"})
		return
	}
	user, err := h.auth.Register(auth.RegisterRequest{Username: req.Username, Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": user.ID, "username": user.Username})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Kind: "invalid_request", Detail: "malformed body"})
		return
	}
	token, user, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": user.ID, "username": user.Username})
}

func (h *Handler) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Kind: "invalid_request", Detail: "malformed body"})
		return
	}
	participants := lo.Map(req.Participants, func(p participantPayload, _ int) domain.Participant {
		return domain.Participant{ID: domain.UserID(p.ID), Username: p.Username}
	})
	session, err := h.debates.CreateSession(req.Topic, participants)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSessionResponse(session))
}

func (h *Handler) getSession(c *gin.Context) {
	session, err := h.debates.Session(domain.SessionID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *Handler) closeSession(c *gin.Context) {
	if err := h.debates.CloseSession(domain.SessionID(c.Param("id"))); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) submitContribution(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Kind: "invalid_request", Detail: "malformed body"})
		return
	}
	sender := domain.UserID(c.GetString(ctxUserID))
	contribution, err := h.debates.Submit(domain.SessionID(c.Param("id")), sender, req.Content, req.Chat)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toContributionResponse(contribution))
}

func (h *Handler) listContributions(c *gin.Context) {
	contributions, err := h.debates.History(domain.SessionID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"contributions": lo.Map(contributions, func(contribution domain.Contribution, _ int) contributionResponse {
			return toContributionResponse(contribution)
		}),
	})
}

func (h *Handler) getTranscript(c *gin.Context) {
	transcript, err := h.debates.Transcript(domain.SessionID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transcript": transcript})
}

func (h *Handler) evaluateSession(c *gin.Context) {
	result, err := h.debates.Evaluate(c.Request.Context(), domain.SessionID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": result.SessionID, "ratings": result.Ratings})
}

// enqueue puts the caller on the waiting queue and immediately tries to form
// a match.
func (h *Handler) enqueue(c *gin.Context) {
	var req enqueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Kind: "invalid_request", Detail: "malformed body"})
		return
	}
	participant := domain.Participant{
		ID:       domain.UserID(c.GetString(ctxUserID)),
		Username: c.GetString(ctxUsername),
	}
	ticket := h.queue.Enqueue(participant)

	session, matched, err := h.queue.TryMatch(req.Topic)
	if err != nil {
		writeError(c, err)
		return
	}
	if matched {
		c.JSON(http.StatusCreated, gin.H{"matched": true, "session": toSessionResponse(session)})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"matched": false, "enqueued_at": ticket.EnqueuedAt, "waiting": h.queue.Waiting()})
}

func (h *Handler) queueStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"waiting": h.queue.Waiting()})
}

func (h *Handler) rankings(c *gin.Context) {
	entries := h.table.OrderedView()
	c.JSON(http.StatusOK, gin.H{
		"rankings": lo.Map(entries, func(entry domain.RankingEntry, i int) gin.H {
			return gin.H{
				"position": i + 1,
				"user_id":  entry.UserID,
				"score":    entry.Score,
				"rating":   entry.Rating,
			}
		}),
	})
}

func (h *Handler) searchTranscripts(c *gin.Context) {
	terms := c.Query("q")
	if terms == "" {
		c.JSON(http.StatusBadRequest, errorBody{Kind: "invalid_request", Detail: "missing q parameter"})
		return
	}
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, errorBody{Kind: "invalid_request", Detail: "invalid limit"})
			return
		}
		limit = parsed
	}
	hits, err := h.debates.SearchTranscripts(c.Request.Context(), terms, domain.SessionID(c.Query("session_id")), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hits": hits})
}

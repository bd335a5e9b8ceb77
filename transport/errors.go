package transport

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "debate-arena/errors"
)

// errorBody is the uniform error payload.
type errorBody struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// writeError maps domain sentinels onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	kind := "internal"

	switch {
	case stderrors.Is(err, apperrors.ErrSessionNotFound),
		stderrors.Is(err, apperrors.ErrRankingUserNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case stderrors.Is(err, apperrors.ErrNotYourTurn):
		status, kind = http.StatusConflict, "not_your_turn"
	case stderrors.Is(err, apperrors.ErrNotAParticipant):
		status, kind = http.StatusForbidden, "not_a_participant"
	case stderrors.Is(err, apperrors.ErrInsufficientParticipants):
		status, kind = http.StatusConflict, "insufficient_participants"
	case stderrors.Is(err, apperrors.ErrEmptyContent),
		stderrors.Is(err, apperrors.ErrInvalidSession),
		stderrors.Is(err, apperrors.ErrInvalidPassword):
		status, kind = http.StatusBadRequest, "invalid_request"
	case stderrors.Is(err, apperrors.ErrUserAlreadyExists):
		status, kind = http.StatusConflict, "user_exists"
	case stderrors.Is(err, apperrors.ErrInvalidCredentials):
		status, kind = http.StatusUnauthorized, "invalid_credentials"
	case stderrors.Is(err, apperrors.ErrEvaluationUnavailable):
		status, kind = http.StatusBadGateway, "evaluation_unavailable"
	}

	c.JSON(status, errorBody{Kind: kind, Detail: err.Error()})
}

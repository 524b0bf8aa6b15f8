package server

import (
	"errors"
	"net/http"

	"list-blitz/internal/engine"
	"list-blitz/internal/entitlement"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type bindMessages map[string]map[string]string

func bindJSON(c *gin.Context, req any, messages bindMessages, fallback string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": resolveBindError(err, messages, fallback)})
		return false
	}
	return true
}

func bindURI(c *gin.Context, req any) bool {
	if err := c.ShouldBindUri(req); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return false
	}
	return true
}

func resolveBindError(err error, messages bindMessages, fallback string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			if fieldMsgs, ok := messages[verr.Field()]; ok {
				if msg, ok := fieldMsgs[verr.Tag()]; ok {
					return msg
				}
			}
		}
	}
	if fallback != "" {
		return fallback
	}
	return "invalid request"
}

// errorStatus maps domain errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, engine.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAuthRequired), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPackLocked), errors.Is(err, ErrAdminDisabled):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrNoPlayers),
		errors.Is(err, engine.ErrBattleNeedsTwoPlayers),
		errors.Is(err, engine.ErrUnknownMode),
		errors.Is(err, engine.ErrNegativeScore),
		errors.Is(err, engine.ErrUnsupportedIntent),
		errors.Is(err, entitlement.ErrMissingCustomer),
		errors.Is(err, ErrUnknownPack),
		errors.Is(err, ErrTooManyPlayers):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrTurnInProgress),
		errors.Is(err, engine.ErrSessionClosed),
		errors.Is(err, engine.ErrMatchUnresolved),
		errors.Is(err, engine.ErrBracketComplete),
		errors.Is(err, engine.ErrNotInMatch),
		errors.Is(err, engine.ErrWinnerMismatch):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	c.JSON(status, gin.H{"error": message})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/kashieternal/rewardsgate/internal/domain/errors"
	"github.com/kashieternal/rewardsgate/internal/domain/model"
	"github.com/kashieternal/rewardsgate/internal/server/http/dto"
	"github.com/kashieternal/rewardsgate/internal/server/http/middleware"
)

// CurrentSession extracts the authenticated session from context.
func CurrentSession(c *gin.Context) *model.Session {
	val, ok := c.Get(middleware.SessionContextKey)
	if !ok {
		return nil
	}
	session, _ := val.(*model.Session)
	return session
}

// respondError maps domain failures to HTTP statuses. Upstream messages pass
// through verbatim; local validation failures carry their own message.
func respondError(c *gin.Context, err error) {
	var upstream *domainErrors.UpstreamError
	switch {
	case errors.Is(err, domainErrors.ErrInvalidPhone),
		errors.Is(err, domainErrors.ErrIncompleteCode),
		errors.Is(err, domainErrors.ErrInsufficientPoints),
		errors.Is(err, domainErrors.ErrInvalidReward):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrCooldownActive):
		c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrBusy), errors.Is(err, domainErrors.ErrFlowState):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrNotAuthenticated), errors.Is(err, domainErrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "session expired"})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &upstream):
		c.JSON(upstream.Status, dto.ErrorResponse{Message: upstream.Error()})
	default:
		c.Status(http.StatusInternalServerError)
	}
}

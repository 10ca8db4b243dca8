package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/typesprint/internal/api/dto"
	"github.com/martijn/typesprint/internal/api/middleware"
	"github.com/martijn/typesprint/internal/core/service"
)

// respondError writes err as an ErrorResponse. Internal errors are attached
// to the context for logging and reported with a generic message.
func respondError(c *gin.Context, err error) {
	status := statusForKind(service.KindOf(err))

	message := "Internal server error"
	if status != http.StatusInternalServerError {
		var svcErr *service.ServiceError
		if errors.As(err, &svcErr) {
			message = svcErr.Message
		}
	} else {
		_ = c.Error(err)
	}

	c.JSON(status, dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Bad Request",
		Message: message,
		Code:    http.StatusBadRequest,
	})
}

func statusForKind(kind service.ErrorKind) int {
	switch kind {
	case service.KindValidation, service.KindConflict:
		return http.StatusBadRequest
	case service.KindAuth:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// callerID returns the user id stored by the auth middleware.
func callerID(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondError(c, service.NewAuthError("Missing token"))
		return 0, false
	}
	return userID, true
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/typesprint/internal/api/dto"
	"github.com/sirupsen/logrus"
)

// ErrorHandlerMiddleware logs errors attached with c.Error and turns panics
// and unanswered errors into a generic 500 response.
func ErrorHandlerMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.WithFields(logrus.Fields{
					"panic":  err,
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
				}).Error("recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, internalErrorResponse())
			}
		}()

		c.Next()

		for _, ginErr := range c.Errors {
			logger.WithError(ginErr.Err).WithFields(logrus.Fields{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			}).Error("request error")
		}
		if len(c.Errors) > 0 && !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, internalErrorResponse())
		}
	}
}

func internalErrorResponse() dto.ErrorResponse {
	return dto.ErrorResponse{
		Error:   "Internal Server Error",
		Message: "An unexpected error occurred",
		Code:    http.StatusInternalServerError,
	}
}

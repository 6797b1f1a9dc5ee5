// Package handlers exposes the REST surface: request DTOs, the gin router
// and the terminal responder that maps the error taxonomy to HTTP statuses.
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
)

// fail is the terminal responder for the single error channel: it maps the
// typed failure to its HTTP status and emits {message, errorDetail}.
// Unexpected errors surface as 500 and are logged with their cause.
func fail(c *gin.Context, logger *zap.Logger, err error) {
	var apiErr *e.Error
	if !errors.As(err, &apiErr) {
		apiErr = e.ErrInternal
		logger.Error("unexpected handler failure",
			zap.Error(err),
			zap.String("path", c.FullPath()),
		)
	}
	c.AbortWithStatusJSON(apiErr.Status, gin.H{
		"message":     apiErr.Message,
		"errorDetail": err.Error(),
	})
}

// respond emits a success payload under conventional keys.
func respond(c *gin.Context, status int, message string, body gin.H) {
	out := gin.H{"message": message}
	for k, v := range body {
		out[k] = v
	}
	c.JSON(status, out)
}

package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shift-scheduler/internal/httpresp"
)

type HTTPError struct {
	Code  string `json:"error_code"`
	Field string `json:"field,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	httpresp.Send(c, status, HTTPError{Code: code}, message, false)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond converts any error into the response envelope. Business errors keep
// their status and message; everything else is logged, reported and hidden
// behind a 500.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		message := be.Message
		if message == "" {
			message = be.Code
		}
		httpresp.Send(c, be.Status(), HTTPError{Code: be.Code, Field: be.Field}, message, false)
		return
	}

	slog.Error("unexpected error",
		"path", c.FullPath(),
		"method", c.Request.Method,
		"error", err,
	)
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}

	Internal(c, "internal_error", "Ocurrió un error inesperado.")
}

// BindError reports a request that failed gin binding.
func BindError(c *gin.Context, err error) {
	httpresp.Send(c, http.StatusBadRequest, gin.H{
		"error_code": "invalid_request",
		"details":    err.Error(),
	}, "Datos inválidos.", false)
}

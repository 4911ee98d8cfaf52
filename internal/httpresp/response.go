package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the shape of every JSON response.
type Envelope struct {
	Data       any    `json:"data"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
}

func Send(c *gin.Context, status int, data any, message string, success bool) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(status, Envelope{
		Data:       data,
		Message:    message,
		StatusCode: status,
		Success:    success,
	})
}

func OK(c *gin.Context, data any) {
	Send(c, http.StatusOK, data, "", true)
}

func OKMessage(c *gin.Context, data any, message string) {
	Send(c, http.StatusOK, data, message, true)
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/leadform-api/pkg/errors"
)

// Envelope is the wire contract for the form endpoints: a success flag, a
// human-readable message, and optional data for operator endpoints.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK acknowledges a request with 200.
func OK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// Data sends a 200 envelope carrying a payload.
func Data(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Error sends a failure envelope with the status carried by the error.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, Envelope{Success: false, Message: appErr.Message})
}

// AbortError sends a failure envelope and aborts the middleware chain.
func AbortError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.AbortWithStatusJSON(appErr.Status, Envelope{Success: false, Message: appErr.Message})
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body returned to clients
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Client-facing error messages
const (
	MsgPromptRequired      = "Prompt is required"
	MsgAllProvidersFailed  = "All image generation providers failed"
	MsgInternalServerError = "Internal server error"
	MsgUnauthorized        = "Unauthorized"
	MsgTryAgainLater       = "Please try again later"
)

// RespondError sends an error response
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// RespondErrorWithDetails sends an error response with details
func RespondErrorWithDetails(c *gin.Context, status int, message string, details string) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// BadRequest sends a 400 error
func BadRequest(c *gin.Context, message string) {
	RespondError(c, http.StatusBadRequest, message)
}

// Unauthorized aborts with a 401 error
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: MsgUnauthorized})
}

// InternalError sends a 500 error carrying diagnostic details
func InternalError(c *gin.Context, details string) {
	RespondErrorWithDetails(c, http.StatusInternalServerError, MsgInternalServerError, details)
}

// ProvidersExhausted sends the 500 returned when no provider produced images
func ProvidersExhausted(c *gin.Context) {
	RespondErrorWithDetails(c, http.StatusInternalServerError, MsgAllProvidersFailed, MsgTryAgainLater)
}

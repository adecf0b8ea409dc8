package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Error represents an API error
type Error struct {
	Code    int
	Message string
}

// NewError creates a new API error
func NewError(code int, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// respondError writes an API error as a JSON response and aborts the
// request.
func respondError(c *gin.Context, err *Error) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

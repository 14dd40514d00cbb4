package handlers

import (
	"github.com/gin-gonic/gin"
)

// Error codes for request-level failures. Vote policy failures reuse the
// codes defined in the votes package so the client maps them to the same
// user-facing messages regardless of which endpoint produced them.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeRateLimited    = "RATE_LIMITED"
)

// ErrorResponse is the envelope every non-2xx response carries: a
// human-readable message plus a machine-readable code
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError writes the standard error envelope and aborts the request
func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

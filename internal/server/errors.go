package server

import (
	"errors"
	"net/http"

	authdomain "github.com/ascendly/ascendly/internal/auth/domain"
	coursedomain "github.com/ascendly/ascendly/internal/course/domain"
	referraldomain "github.com/ascendly/ascendly/internal/referral/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// The error body is a flat {"error": <message>} object. Auth failures
// always read "Unauthorized" regardless of cause so the response does
// not leak whether a token exists, is expired, or lacks the role.
type errorResponse struct {
	Error string `json:"error"`
}

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrTooManyRequests = errors.New("too_many_requests")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: message})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidToken),
		errors.Is(err, authdomain.ErrTokenExpired):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, "Too Many Requests"
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, coursedomain.ErrInvalidTitle):
		return http.StatusBadRequest, "Bad Request"
	case errors.Is(err, coursedomain.ErrNotFound),
		errors.Is(err, referraldomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "Not Found"
	default:
		if err != nil && err.Error() != "" {
			return http.StatusInternalServerError, err.Error()
		}
		return http.StatusInternalServerError, "internal server error"
	}
}

func classifyErrorForLog(err error) string {
	status, _ := mapError(err)
	switch {
	case status == http.StatusUnauthorized:
		return "auth"
	case status == http.StatusTooManyRequests:
		return "rate_limit"
	case status >= 500:
		return "internal"
	default:
		return "client"
	}
}

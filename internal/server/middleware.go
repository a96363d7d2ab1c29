package server

import (
	"strings"

	userdomain "github.com/ascendly/ascendly/internal/user/domain"
	"github.com/gin-gonic/gin"
)

const contextUserKey = "auth_user"

// AuthRequired resolves the Authorization bearer token to a user and
// stores it on the gin context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		authedUser, err := s.authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserKey, authedUser)
		c.Next()
	}
}

// RequireRole rejects callers whose authenticated user lacks the role.
// Role failures are indistinguishable from missing tokens on the wire.
func (s *Server) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authedUser := currentUser(c)
		if authedUser == nil || !authedUser.HasRole(role) {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *userdomain.User {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	authedUser, ok := value.(*userdomain.User)
	if !ok {
		return nil
	}
	return authedUser
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

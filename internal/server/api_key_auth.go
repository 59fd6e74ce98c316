package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

const apiKeyHeader = "X-API-Key"

// APIKeyRequired gates the agendamentos API and the admin surface behind a
// shared secret. A missing header is unauthorized, a wrong one forbidden.
func (s *Server) APIKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := strings.TrimSpace(c.GetHeader(apiKeyHeader))
		if provided == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		expected := strings.TrimSpace(s.cfg.APIKey)
		if expected == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			AbortWithError(c, ErrForbidden)
			return
		}

		c.Next()
	}
}

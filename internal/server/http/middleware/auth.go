package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ordersvc/internal/server/http/dto"
)

// CredentialContextKey is a gin context key for the caller credential.
const CredentialContextKey = "credential"

// CredentialRequired rejects requests without an Authorization header and
// stores the raw header value for forwarding to the identity service.
func CredentialRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := extractCredential(c)
		if credential == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Authorization header is required"))
			return
		}

		c.Set(CredentialContextKey, credential)
		c.Next()
	}
}

func extractCredential(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader("Authorization"))
}

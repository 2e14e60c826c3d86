// ================== internal/middleware/auth.go ==================
package middleware

import (
	"strings"

	"github.com/xyz-asif/foundit/internal/features/identity"
	"github.com/xyz-asif/foundit/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth rejects requests without a valid bearer token
func Auth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			response.Unauthorized(c, "Authorization header required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		if !authenticate(c, verifier, tokenString) {
			response.Unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a token is present and
// leaves anonymous requests alone. A token that fails verification is still
// rejected.
func OptionalAuth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.Next()
			return
		}

		if !authenticate(c, verifier, tokenString) {
			response.Unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
			c.Abort()
			return
		}

		c.Next()
	}
}

func authenticate(c *gin.Context, verifier identity.Verifier, tokenString string) bool {
	id, err := verifier.Verify(c.Request.Context(), tokenString)
	if err != nil {
		return false
	}

	c.Request = c.Request.WithContext(identity.WithIdentity(c.Request.Context(), id))
	c.Set("userID", id.Subject)
	c.Set("email", id.ContactAddress)
	return true
}

// bearerToken supports both "Bearer <token>" (case-insensitive) and a raw token in the header
func bearerToken(authHeader string) string {
	fields := strings.Fields(authHeader)
	switch {
	case len(fields) == 2 && strings.EqualFold(fields[0], "Bearer"):
		return fields[1]
	case len(fields) == 1 && !strings.EqualFold(fields[0], "Bearer"):
		return fields[0]
	default:
		return ""
	}
}

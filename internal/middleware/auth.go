package middleware

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/meejain/da-crawl/internal/service"
)

// ErrNotBasic marks an Authorization header that does not carry a Basic
// scheme at all, as opposed to one that is malformed.
var ErrNotBasic = errors.New("authorization header missing or not Basic")

// DecodeBasicCredentials extracts the email/password pair from a Basic
// Authorization header value.
func DecodeBasicCredentials(header string) (email, password string, err error) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", ErrNotBasic
	}
	raw, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", errors.New("invalid base64 credentials")
	}
	email, password, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", "", errors.New("invalid basic auth format")
	}
	return email, password, nil
}

// BasicAuthMiddleware authenticates requests with HTTP Basic credentials
// and stores the resolved user ID on the context.
func BasicAuthMiddleware(us service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, err := DecodeBasicCredentials(c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, ErrNotBasic) {
				c.Header("WWW-Authenticate", `Basic realm="Restricted"`)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := us.Authenticate(email, password)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// JWTAuthMiddleware authenticates requests with a Bearer JWT. A token must
// validate, must not be revoked, and must belong to a user that still
// exists; the user ID and the token's JTI end up on the context.
func JWTAuthMiddleware(ts service.TokenService, userLookup service.UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing or not Bearer"})
			return
		}

		claims, err := ts.Validate(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		blacklisted, err := ts.IsBlacklisted(claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not verify token"})
			return
		}
		if blacklisted {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has been revoked"})
			return
		}

		if _, err := userLookup.FindByID(claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user no longer exists"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("jti", claims.ID)
		c.Next()
	}
}

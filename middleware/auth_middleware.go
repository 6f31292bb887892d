package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/todoapi/models"
	"github.com/princinho/todoapi/services"
)

const AuthHeader = "x-auth"

const (
	userKey  = "user"
	tokenKey = "token"
)

// AuthMiddleware resolves the x-auth header to a user. Every rejection is a
// 401 with an empty JSON object.
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AuthHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{})
			return
		}

		user, err := tokens.Authenticate(c.Request.Context(), token)
		if err != nil {
			RespondError(c, err)
			return
		}

		c.Set(userKey, user)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// CurrentUser is only valid behind AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(userKey).(*models.User)
}

func CurrentToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

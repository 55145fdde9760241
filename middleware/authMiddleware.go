package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-restaurant-ordering/helpers"
)

// clientToken reads the token from the "token" header, an
// "Authorization: Bearer" header, or the token query parameter used by
// websocket clients.
func clientToken(c *gin.Context) string {
	if token := c.Request.Header.Get("token"); token != "" {
		return token
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return c.Query("token")
}

func setClaims(c *gin.Context, claims *helpers.SignedDetails) {
	c.Set("email", claims.Email)
	c.Set("Name", claims.Name)
	c.Set("uid", claims.Uid)
	c.Set("user_role", claims.User_role)
}

func Authentication(tokens *helpers.TokenHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := clientToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no authorization token provided"})
			return
		}
		claims, err := tokens.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthentication sets the caller's claims when a valid token is
// present and otherwise lets the request through anonymously.
func OptionalAuthentication(tokens *helpers.TokenHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := clientToken(c); token != "" {
			if claims, err := tokens.ValidateToken(token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRole must run after Authentication.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("user_role")
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

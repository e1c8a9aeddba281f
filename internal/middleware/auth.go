package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usamaejaz9741/pizza-shop/internal/auth"
)

// AdminSession guards back-office routes. It reads the session cookie,
// validates the token, and clears the cookie on any rejection so a stale
// or tampered session doesn't linger in the browser.
func AdminSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing admin session"})
			return
		}

		if err := auth.ValidateToken(token); err != nil {
			c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin session"})
			return
		}

		c.Next()
	}
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys populated by sessionMiddleware for downstream handlers.
const (
	ctxUserID   = "userId"
	ctxUsername = "username"
	ctxToken    = "sessionToken"
)

// bearerToken extracts the session token from the Authorization header,
// falling back to the token query parameter for websocket upgrades
// (browsers cannot set headers on a WebSocket handshake).
func bearerToken(c *gin.Context) (string, string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if tok := c.Query("token"); tok != "" {
			return tok, ""
		}
		return "", "missing Authorization header"
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "invalid Authorization header format"
	}
	return parts[1], ""
}

// sessionMiddleware fails closed: every mutating route behind it runs
// only after the token resolved to a live session.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token, errMsg := bearerToken(c)
	if errMsg != "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMsg})
		return
	}

	sess, err := h.services.Authenticate(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired session",
		})
		return
	}

	// store in Gin context
	c.Set(ctxUserID, sess.UserID)
	c.Set(ctxUsername, sess.Username)
	c.Set(ctxToken, token)
	c.Next()
}

package handlers

import (
	"errors"
	"net/http"

	"inventory_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type signInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Sign in
// @Description  Verifies credentials and issues an opaque session token valid for 2 hours.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  signInRequest  true  "Credentials"
// @Success      200  {object}  map[string]interface{}  "token, username, expires_at"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input signInRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, sess, err := h.services.SignIn(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		// Unknown username and wrong password deliberately share one answer.
		if errors.Is(err, service.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Infow("sign_in_rejected", "username", input.Username)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSignIn, "sign_in_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"username":   sess.Username,
		"expires_at": sess.ExpiresAt,
	})
}

// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/sign-out [post]
// @Security     BearerAuth
func (h *Handler) signOut(c *gin.Context) {
	token := c.GetString(ctxToken)
	if err := h.services.SignOut(c.Request.Context(), token); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSignOut, "sign_out_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed_out"})
}

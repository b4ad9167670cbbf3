package handlers

import (
	"net/http"

	"social_threads/internal/apperror"

	"github.com/gin-gonic/gin"
)

const (
	// sessionCookieName is the cookie carrying the session token.
	sessionCookieName = "jwt"

	// callerIDKey is where the resolved caller id is stored in the gin context.
	callerIDKey = "callerId"
)

// authRequired resolves the caller's identity from the session cookie and
// rejects the request if the token is missing, invalid, or references a
// deleted user.
func (h *Handler) authRequired(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "unauthenticated",
		})
		return
	}

	callerID, err := h.services.Authenticate(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(apperror.HTTPStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.Set(callerIDKey, callerID)
	c.Next()
}

// callerID returns the identity stored by authRequired.
func callerID(c *gin.Context) string {
	return c.GetString(callerIDKey)
}

// setSessionCookie attaches the token as an HTTP-only cookie.
func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(h.services.TokenTTL().Seconds())
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", false, true)
}

// clearSessionCookie overwrites the cookie with an immediately expired value.
func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}

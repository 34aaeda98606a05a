package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"microblog/internal/domain"
)

// contextUserKey is the gin context key the resolved identity is stored under.
const contextUserKey = "currentUser"

// resolveUser runs before every handler. It resolves the session cookie to a
// user record and attaches it to the request context. Anything that fails to
// resolve, including a stale identity whose user row is gone, leaves the
// request anonymous. Resolution happens fresh on every request.
func (h *Handler) resolveUser(c *gin.Context) {
	if id, ok := h.sessions.UserID(c.Request); ok {
		if user, err := h.auth.GetByID(c.Request.Context(), id); err == nil {
			c.Set(contextUserKey, user)
		}
	}
	c.Next()
}

// requireAuth guards state-changing routes. Anonymous requests are redirected
// to the login page before the wrapped handler runs.
func (h *Handler) requireAuth(c *gin.Context) {
	if currentUser(c) == nil {
		c.Redirect(http.StatusFound, "/auth/login")
		c.Abort()
		return
	}
	c.Next()
}

// currentUser returns the identity attached by resolveUser, or nil.
func currentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(contextUserKey); ok {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surajkarki66/MediLeaf-backend/pkg/helpers"
	"github.com/surajkarki66/MediLeaf-backend/pkg/response"
	"github.com/surajkarki66/MediLeaf-backend/pkg/session"
)

// Auth resolves the opaque session cookie against Redis and sets userID,
// userName and userEmail in the Gin context. Requests without a live
// session are rejected.
func Auth(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(helpers.SessionCookie)
		if err != nil || sid == "" {
			response.AbortError(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		sess, err := sessions.Get(c.Request.Context(), sid)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "session expired or invalid", nil)
			return
		}
		c.Set("sessionID", sid)
		c.Set("userID", sess.UserID)
		c.Set("userName", sess.FullName)
		c.Set("userEmail", sess.Email)
		c.Next()
	}
}

// OptionalAuth resolves the session when present but lets anonymous
// requests through. Feedback submissions use it to attach the account
// when there is one.
func OptionalAuth(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid, err := c.Cookie(helpers.SessionCookie); err == nil && sid != "" {
			if sess, err := sessions.Get(c.Request.Context(), sid); err == nil {
				c.Set("userID", sess.UserID)
				c.Set("userName", sess.FullName)
				c.Set("userEmail", sess.Email)
			}
		}
		c.Next()
	}
}

// StaffChecker reports whether the user may manage the catalog.
type StaffChecker func(c *gin.Context, userID int64) bool

// RequireStaff gates catalog mutations behind the staff flag. It must run
// after Auth.
func RequireStaff(isStaff StaffChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("userID")
		if uid == 0 || !isStaff(c, uid) {
			response.AbortError(c, http.StatusForbidden, "staff access required", nil)
			return
		}
		c.Next()
	}
}

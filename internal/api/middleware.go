package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventcal/internal/auth"
	"eventcal/internal/models"
	"eventcal/internal/repository"
)

const (
	sessionCookie = "eventcal_session"
	ctxUserKey    = "currentUser"
)

// RequireUser resolves the session cookie into a user and aborts with a
// redirect to the login page when no valid session exists. The guarded
// handler never runs for anonymous requests.
func RequireUser(users repository.Users, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		userID, err := auth.UserIDFromToken(token, secret)
		if err != nil {
			clearSession(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			clearSession(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// currentUser returns the user resolved by RequireUser. Only valid inside
// guarded handlers.
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(ctxUserKey).(*models.User)
}

func setSession(c *gin.Context, token string, maxAge int) {
	c.SetCookie(sessionCookie, token, maxAge, "/", "", false, true)
}

func clearSession(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}

package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/session"
	"github.com/localnerve/vortex-console/internal/store"
	"github.com/localnerve/vortex-console/internal/views"
)

const (
	LocalSession = "session"
	LocalUser    = "user"

	sessionMaxAge = 30 * 24 * time.Hour
)

// Session loads the visitor's session from its cookie, resolves the signed
// in user against the document, and saves the session afterwards if the
// handler changed it.
func Session(manager *session.Manager, st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := manager.Get(c.UserContext(), c.Cookies(session.CookieName))
		if err != nil {
			return err
		}
		before := *sess

		var user *models.User
		st.Read(func(doc *models.Document) {
			user = views.CurrentUser(doc, sess)
		})
		if sess.Authenticated() && user == nil {
			// banned, suspended or deleted since the last request
			sess.Logout()
		}

		c.Locals(LocalSession, sess)
		if user != nil {
			c.Locals(LocalUser, user)
		}

		c.Cookie(&fiber.Cookie{
			Name:     session.CookieName,
			Value:    sess.ID,
			Path:     "/",
			Expires:  time.Now().Add(sessionMaxAge),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})

		handlerErr := c.Next()

		// a lost session write is logged by the manager and must not replace
		// the handler's response
		if *sess != before {
			_ = manager.Save(c.UserContext(), sess)
		}
		return handlerErr
	}
}

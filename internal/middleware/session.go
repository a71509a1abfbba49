package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"roomdesk/internal/session"
)

const sessionContextKey = "roomdesk_session"

// LoadSession resolves the session cookie on every request and stashes the
// session (or nil) in the echo context. A token past its exp claim is
// destroyed on the spot so later handlers never proxy doomed calls.
func LoadSession(store *session.Store, cookieName string, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sess, err := store.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				logger.Error().Err(err).Msg("session lookup failed")
				return next(c)
			}
			if sess == nil {
				return next(c)
			}
			if sess.Expired(time.Now()) {
				_ = store.Destroy(c.Request().Context(), sess.ID)
				clearCookie(c, cookieName)
				return next(c)
			}

			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// CurrentSession returns the loaded session, or nil for guests.
func CurrentSession(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionContextKey).(*session.Session)
	return sess
}

// RequireSession gates protected pages: guests are redirected to the login
// screen.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentSession(c) == nil {
				return c.Redirect(http.StatusSeeOther, "/auth/login")
			}
			return next(c)
		}
	}
}

// RequireGuest gates the login/register screens: an authenticated visitor
// is sent home instead.
func RequireGuest() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentSession(c) != nil {
				return c.Redirect(http.StatusSeeOther, "/")
			}
			return next(c)
		}
	}
}

// RequireAdmin gates the admin surfaces.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			if sess == nil {
				return c.Redirect(http.StatusSeeOther, "/auth/login")
			}
			if !sess.User.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin only")
			}
			return next(c)
		}
	}
}

func clearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

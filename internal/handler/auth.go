package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"roomdesk/internal/backend"
	"roomdesk/internal/metrics"
	"roomdesk/internal/middleware"
	"roomdesk/internal/view"
)

// authMessage prefers the backend's own message over the generic fallback.
func authMessage(err error, fallback string) string {
	if apiErr, ok := backend.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type loginVM struct {
	Page  view.Page
	Email string
	Error string
}

type registerVM struct {
	Page  view.Page
	Name  string
	Email string
	Phone string
	Error string
}

func (h *Handler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", loginVM{Page: h.page(c, "Login")})
}

// Login exchanges the form credentials for a backend token and opens a
// session. Failures re-render the form inline with the backend's message.
func (h *Handler) Login(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	creds, err := h.api.Login(c.Request().Context(), email, password)
	if err != nil {
		metrics.IncLogin("failure")
		return c.Render(http.StatusUnauthorized, "login.html", loginVM{
			Page:  h.page(c, "Login"),
			Email: email,
			Error: authMessage(err, "Login failed. Please check your credentials."),
		})
	}

	sess, err := h.sessions.Create(c.Request().Context(), creds.User, creds.Token)
	if err != nil {
		metrics.IncLogin("failure")
		return c.Render(http.StatusInternalServerError, "login.html", loginVM{
			Page:  h.page(c, "Login"),
			Email: email,
			Error: "Login failed. Please try again.",
		})
	}

	metrics.IncLogin("success")
	h.setSessionCookie(c, sess.ID)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", registerVM{Page: h.page(c, "Register")})
}

// Register creates an account and goes straight into a session, same as a
// fresh login.
func (h *Handler) Register(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	phone := strings.TrimSpace(c.FormValue("phone"))

	renderErr := func(status int, message string) error {
		return c.Render(status, "register.html", registerVM{
			Page:  h.page(c, "Register"),
			Name:  name,
			Email: email,
			Phone: phone,
			Error: message,
		})
	}

	if name == "" || email == "" || password == "" {
		return renderErr(http.StatusBadRequest, "Name, email and password are required")
	}

	creds, err := h.api.Register(c.Request().Context(), name, email, password, phone)
	if err != nil {
		return renderErr(http.StatusBadRequest, authMessage(err, "Registration failed. Please try again."))
	}

	sess, err := h.sessions.Create(c.Request().Context(), creds.User, creds.Token)
	if err != nil {
		return renderErr(http.StatusInternalServerError, "Registration succeeded but login failed. Please log in.")
	}

	metrics.IncLogin("success")
	h.setSessionCookie(c, sess.ID)
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout destroys the session and clears the cookie; both stored session
// values (user and token) go with it.
func (h *Handler) Logout(c echo.Context) error {
	if sess := middleware.CurrentSession(c); sess != nil {
		if err := h.sessions.Destroy(c.Request().Context(), sess.ID); err != nil {
			h.logger.Error().Err(err).Msg("session destroy failed")
		}
	}
	h.clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/auth/login")
}

func (h *Handler) setSessionCookie(c echo.Context, id string) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

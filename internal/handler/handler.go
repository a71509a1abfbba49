// Package handler implements the web pages and the guarded mutation flow
// behind every booking and room action.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"roomdesk/internal/audit"
	"roomdesk/internal/backend"
	"roomdesk/internal/inflight"
	"roomdesk/internal/metrics"
	"roomdesk/internal/middleware"
	"roomdesk/internal/session"
	"roomdesk/internal/view"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Handler carries the shared dependencies of every page handler.
type Handler struct {
	api      *backend.Client
	sessions *session.Store
	guard    *inflight.Guard
	audit    *audit.DB
	rdb      *redis.Client
	cookie   CookieConfig
	logger   zerolog.Logger
}

func New(
	api *backend.Client,
	sessions *session.Store,
	guard *inflight.Guard,
	auditDB *audit.DB,
	rdb *redis.Client,
	cookie CookieConfig,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		api:      api,
		sessions: sessions,
		guard:    guard,
		audit:    auditDB,
		rdb:      rdb,
		cookie:   cookie,
		logger:   logger.With().Str("component", "handler").Logger(),
	}
}

// apiFor returns the backend client bound to the session's token.
func (h *Handler) apiFor(sess *session.Session) *backend.Client {
	if sess == nil {
		return h.api
	}
	return h.api.WithToken(sess.Token)
}

// page assembles the shared template fields and drains pending flashes.
func (h *Handler) page(c echo.Context, title string) view.Page {
	p := view.Page{Title: title}
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return p
	}
	p.User = &sess.User
	flashes, err := h.sessions.PopFlashes(c.Request().Context(), sess.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("draining flashes failed")
	}
	p.Flashes = flashes
	return p
}

func (h *Handler) flash(c echo.Context, kind, message string) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return
	}
	if err := h.sessions.PushFlash(c.Request().Context(), sess.ID, kind, message); err != nil {
		h.logger.Error().Err(err).Msg("pushing flash failed")
	}
}

type errorVM struct {
	Page    view.Page
	Message string
}

// renderError shows a full-replacement page-level message, e.g. "Room not
// found" or "Failed to load bookings".
func (h *Handler) renderError(c echo.Context, status int, message string) error {
	return c.Render(status, "error.html", errorVM{Page: h.page(c, "Error"), Message: message})
}

type confirmVM struct {
	Page      view.Page
	Prompt    string
	Action    string
	CancelURL string
	Fields    map[string]string
}

// mutation describes one submission-guarded backend call.
type mutation struct {
	action       string // guard and metrics label
	entityID     string // target entity; empty for creations
	confirm      string // confirmation prompt; empty skips the confirm step
	success      string // flash on success
	fallback     string // flash when the backend reports no message
	redirect     string // where success lands; the GET there re-fetches
	failRedirect string // where failure lands; defaults to redirect
	auditEntity  string // entity type for the admin trail; empty skips it
	call         func(ctx context.Context) error
}

// run executes the guarded mutation flow in one place so every action
// behaves identically: confirm, take the busy flag synchronously, call the
// backend, flash the outcome, and resync through a redirect on success.
func (h *Handler) run(c echo.Context, m mutation) error {
	sess := middleware.CurrentSession(c)
	ctx := c.Request().Context()

	// Destructive actions need an explicit yes before any network call.
	if m.confirm != "" && c.FormValue("confirm") != "yes" {
		return c.Render(http.StatusOK, "confirm.html", confirmVM{
			Page:      h.page(c, "Confirm"),
			Prompt:    m.confirm,
			Action:    c.Request().URL.Path,
			CancelURL: m.redirect,
		})
	}

	key := inflight.Key(sess.ID, m.action, m.entityID)
	err := h.guard.Do(key, func() error {
		return m.call(ctx)
	})

	if errors.Is(err, inflight.ErrBusy) {
		// Duplicate trigger while the first request is pending: no second
		// network call, no flash, just land where the first one will.
		metrics.IncDuplicateSubmit()
		return c.Redirect(http.StatusSeeOther, m.redirect)
	}

	if err != nil {
		message := m.fallback
		if apiErr, ok := backend.AsAPIError(err); ok && apiErr.Message != "" {
			message = apiErr.Message
		}
		metrics.IncMutation(m.action, "failure")
		h.recordAudit(ctx, sess, m, audit.OutcomeRejected, message)
		h.flash(c, "error", message)
		zerolog.Ctx(ctx).Warn().Err(err).Str("action", m.action).Str("entity", m.entityID).Msg("mutation rejected")
		target := m.failRedirect
		if target == "" {
			target = m.redirect
		}
		return c.Redirect(http.StatusSeeOther, target)
	}

	metrics.IncMutation(m.action, "success")
	h.recordAudit(ctx, sess, m, audit.OutcomeOK, "")
	h.flash(c, "success", m.success)
	return c.Redirect(http.StatusSeeOther, m.redirect)
}

func (h *Handler) recordAudit(ctx context.Context, sess *session.Session, m mutation, outcome, message string) {
	if m.auditEntity == "" || h.audit == nil {
		return
	}
	err := h.audit.Record(ctx, audit.Entry{
		ActorID:    sess.User.ID,
		ActorEmail: sess.User.Email,
		Action:     m.action,
		EntityType: m.auditEntity,
		EntityID:   m.entityID,
		Outcome:    outcome,
		Message:    message,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("audit record failed")
	}
}

// Package session holds the per-browser auth state: the backend-issued
// user profile and bearer token, plus pending flash notifications. The
// browser carries only an opaque session id; everything else lives in
// Redis under a TTL.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"roomdesk/internal/models"
)

const keyPrefix = "session:"

// Flash is a one-shot notification rendered on the next page load.
type Flash struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}

// Session is the explicit session object handed to handlers. It is a
// snapshot; mutations go through the Store.
type Session struct {
	ID      string      `json:"-"`
	User    models.User `json:"user"`
	Token   string      `json:"token"`
	Flashes []Flash     `json:"flashes,omitempty"`
}

// Expired reports whether the stored bearer token has passed its exp
// claim. The token is not verified here; the backend remains the
// authority. An unparsable token is left for the backend to reject.
func (s *Session) Expired(now time.Time) bool {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(s.Token, claims)
	if err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

// Store creates, loads and destroys sessions in Redis.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewStore(rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *Store {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Store{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// Create opens a new session for a freshly authenticated user and returns
// it with a random id for the cookie.
func (s *Store) Create(ctx context.Context, user models.User, token string) (*Session, error) {
	sess := &Session{ID: uuid.New().String(), User: user, Token: token}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("session created")
	return sess, nil
}

// Get loads a session by id. A missing or expired key returns (nil, nil);
// callers treat that as "not logged in".
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, nil
	}
	val, err := s.rdb.Get(ctx, keyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		// A corrupt session is dropped rather than surfaced.
		s.logger.Warn().Err(err).Msg("dropping corrupt session")
		_ = s.rdb.Del(ctx, keyPrefix+id).Err()
		return nil, nil
	}
	sess.ID = id
	return &sess, nil
}

// Destroy removes the session; both stored keys (user and token) go away
// with it.
func (s *Store) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.rdb.Del(ctx, keyPrefix+id).Err()
}

// PushFlash appends a notification to the session for the next render.
func (s *Store) PushFlash(ctx context.Context, id, kind, message string) error {
	sess, err := s.Get(ctx, id)
	if err != nil || sess == nil {
		return err
	}
	sess.Flashes = append(sess.Flashes, Flash{Kind: kind, Message: message})
	return s.save(ctx, sess)
}

// PopFlashes returns pending notifications and clears them.
func (s *Store) PopFlashes(ctx context.Context, id string) ([]Flash, error) {
	sess, err := s.Get(ctx, id)
	if err != nil || sess == nil {
		return nil, err
	}
	flashes := sess.Flashes
	if len(flashes) == 0 {
		return nil, nil
	}
	sess.Flashes = nil
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return flashes, nil
}

func (s *Store) save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+sess.ID, data, s.ttl).Err()
}

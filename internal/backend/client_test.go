package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginParsesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"user":{"_id":"u1","email":"a@b.c","role":"admin"},"token":"tok"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	creds, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", creds.User.ID)
	assert.Equal(t, "admin", creds.User.Role)
	assert.Equal(t, "tok", creds.Token)
}

func TestErrorEnvelopeCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"Conflict"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.CreateBooking(context.Background(), "r1", time.Now(), time.Now().Add(time.Hour))
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Conflict", apiErr.Error())
}

func TestFailedEnvelopeWithoutHTTPError(t *testing.T) {
	// Some backends answer 200 with success:false; that is still an error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"room is inactive"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.ListRooms(context.Background())
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "room is inactive", apiErr.Message)
}

func TestMalformedEnvelope(t *testing.T) {
	cases := map[string]string{
		"not json":       `<html>oops</html>`,
		"bare array":     `[{"_id":"r1"}]`,
		"missing data":   `{"success":true}`,
		"mistyped rooms": `{"success":true,"data":{"unexpected":"shape"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			c := New(srv.URL, time.Second)
			_, err := c.ListRooms(context.Background())
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)

	_, err := c.ListRooms(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "unauthenticated client sends no header")

	_, err = c.WithToken("tok123").MyBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestRoomsCacheInvalidatedByMutation(t *testing.T) {
	var listCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rooms" && r.Method == http.MethodGet {
			atomic.AddInt32(&listCalls, 1)
			_, _ = w.Write([]byte(`{"success":true,"data":[{"_id":"r1","name":"Atrium","capacity":4,"amenities":[],"isActive":true}]}`))
			return
		}
		// deactivate
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer srv.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	c := New(srv.URL, time.Second)
	c.UseRedisCache(rdb, time.Minute)
	ctx := context.Background()

	_, err := c.ListRooms(ctx)
	require.NoError(t, err)
	rooms, err := c.ListRooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Atrium", rooms[0].Name)
	assert.EqualValues(t, 1, atomic.LoadInt32(&listCalls), "second list served from cache")

	require.NoError(t, c.DeactivateRoom(ctx, "r1"))

	_, err = c.ListRooms(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&listCalls), "mutation drops the cached list")
}

func TestTransportFailure(t *testing.T) {
	c := New("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := c.ListRooms(context.Background())
	require.Error(t, err)
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI, "transport errors are not backend-reported errors")
}

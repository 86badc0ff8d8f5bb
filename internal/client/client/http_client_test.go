package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"success": status < 300}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	_ = json.NewEncoder(w).Encode(body)
}

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", 2*time.Second)
}

func TestHTTPClient_Signup(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/signup", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req SignupRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@x.io", req.Email)
		assert.Equal(t, "Ann", req.FullName)

		writeEnvelope(w, http.StatusCreated, "Account created successfully", map[string]any{
			"token": "tok",
			"user":  map[string]any{"id": 7, "email": "a@x.io", "fullName": "Ann"},
		})
	})

	res, err := c.Signup(context.Background(), SignupRequest{Email: "a@x.io", Password: "secret1", FullName: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, int64(7), res.User.ID)
	assert.Equal(t, "Ann", res.User.FullName)
}

func TestHTTPClient_Signup_Conflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusConflict, "an account with this email already exists", nil)
	})

	_, err := c.Signup(context.Background(), SignupRequest{Email: "a@x.io", Password: "secret1", FullName: "Ann"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "an account with this email already exists", apiErr.Error())
}

func TestHTTPClient_Login_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email":"a@x.io","password":"nope"}`, string(b))
		writeEnvelope(w, http.StatusUnauthorized, "invalid email or password", nil)
	})

	_, err := c.Login(context.Background(), "a@x.io", "nope")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.EqualError(t, err, "invalid email or password")
}

func TestHTTPClient_Login_Throttled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusTooManyRequests, "too many requests, try again later", nil)
	})

	_, err := c.Login(context.Background(), "a@x.io", "pw")
	assert.ErrorIs(t, err, ErrThrottled)
}

func TestHTTPClient_Verify_SendsBearer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/verify", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, "", map[string]any{
			"user": map[string]any{"id": 3, "email": "b@x.io", "department": "CSE"},
		})
	})

	u, err := c.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, "CSE", u.Department)
}

func TestHTTPClient_Ping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		writeEnvelope(w, http.StatusOK, "", map[string]string{"status": "ok"})
	})
	require.NoError(t, c.Ping(context.Background()))
}

func TestHTTPClient_ServerError_NoEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	err := c.Ping(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "server returned 502", apiErr.Error())
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second)
	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

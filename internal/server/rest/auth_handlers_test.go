package rest

import (
	"net/http"
	"testing"

	"github.com/dmitrijs2005/placementportal/internal/server/models"
	"github.com/dmitrijs2005/placementportal/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupBody(email, password, name string) map[string]string {
	return map[string]string{"email": email, "password": password, "fullName": name}
}

func TestAuthScenario(t *testing.T) {
	api := newTestAPI(t, testConfig())

	code, body, _ := api.do(http.MethodPost, "/api/auth/signup", signupBody("a@x.com", "secret1", "A"))
	require.Equal(t, http.StatusCreated, code, body.Message)
	signup := decode[services.AuthResult](t, body.Data)
	require.NotEmpty(t, signup.Token)

	code, body, _ = api.do(http.MethodGet, "/api/auth/verify", nil, "Authorization", "Bearer "+signup.Token)
	require.Equal(t, http.StatusOK, code)
	verified := decode[struct {
		User models.AccountView `json:"user"`
	}](t, body.Data)
	assert.Equal(t, "a@x.com", verified.User.Email)
	assert.Equal(t, signup.User.ID, verified.User.ID)

	code, wrong, _ := api.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "a@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, wrong.Success)

	code, unknown, _ := api.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "nobody@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, wrong.Message, unknown.Message)

	code, body, _ = api.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, code)
	login := decode[services.AuthResult](t, body.Data)
	assert.NotEqual(t, signup.Token, login.Token)
	assert.Equal(t, signup.User.ID, login.User.ID)
}

func TestSignup_Errors(t *testing.T) {
	api := newTestAPI(t, testConfig())

	code, _, _ := api.do(http.MethodPost, "/api/auth/signup", signupBody("a@x.com", "secret1", "A"))
	require.Equal(t, http.StatusCreated, code)

	tests := []struct {
		name string
		body any
		code int
	}{
		{"duplicate", signupBody("A@X.com", "secret1", "A"), http.StatusConflict},
		{"short password", signupBody("b@x.com", "12345", "B"), http.StatusBadRequest},
		{"missing name", signupBody("b@x.com", "secret1", ""), http.StatusBadRequest},
		{"malformed json", `{"email":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body, _ := api.do(http.MethodPost, "/api/auth/signup", tt.body)
			assert.Equal(t, tt.code, code)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestLogin_MissingFields(t *testing.T) {
	api := newTestAPI(t, testConfig())

	code, body, _ := api.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "email and password are required", body.Message)
}

func TestVerify_Rejections(t *testing.T) {
	api := newTestAPI(t, testConfig())

	cases := map[string][]string{
		"no header":    nil,
		"wrong scheme": {"Authorization", "Basic dXNlcjpwYXNz"},
		"garbage":      {"Authorization", "Bearer not-a-token"},
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			code, body, _ := api.do(http.MethodGet, "/api/auth/verify", nil, header...)
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.False(t, body.Success)
		})
	}
}

func TestAuthThrottle(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRateLimit = 2
	api := newTestAPI(t, cfg)

	creds := map[string]string{"email": "a@x.com", "password": "secret1"}
	for i := 0; i < 2; i++ {
		code, _, _ := api.do(http.MethodPost, "/api/auth/login", creds)
		assert.Equal(t, http.StatusUnauthorized, code)
	}

	code, body, _ := api.do(http.MethodPost, "/api/auth/login", creds)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.False(t, body.Success)

	// verify is not throttled
	code, _, _ = api.do(http.MethodGet, "/api/auth/verify", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("Bear"))
	assert.Equal(t, "", bearerToken(""))
}

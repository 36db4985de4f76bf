package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSecret = []byte("test-secret")

func TestRequireAuth(t *testing.T) {
	caller := NewAuthority("alice", "")
	assert.Equal(t, "alice@active", caller.String())

	require.NoError(t, RequireAuth(caller, "alice"))
	assert.ErrorIs(t, RequireAuth(caller, "bob"), ErrMissingAuthority)
	assert.ErrorIs(t, RequireAuth(Authority{}, "alice"), ErrMissingAuthority)
}

func TestRequireAuth2(t *testing.T) {
	callback := NewAuthority("icp.token", "callback")

	require.NoError(t, RequireAuth2(callback, "icp.token", "callback"))
	assert.ErrorIs(t, RequireAuth2(NewAuthority("icp.token", "active"), "icp.token", "callback"), ErrMissingAuthority)
	assert.ErrorIs(t, RequireAuth2(NewAuthority("mallory", "callback"), "icp.token", "callback"), ErrMissingAuthority)
	// any permission satisfies RequireAuth
	require.NoError(t, RequireAuth(callback, "icp.token"))
}

func TestParseAuthority(t *testing.T) {
	a, err := ParseAuthority("icp.token@callback")
	require.NoError(t, err)
	assert.Equal(t, Authority{Actor: "icp.token", Permission: "callback"}, a)

	a, err = ParseAuthority("alice")
	require.NoError(t, err)
	assert.Equal(t, DefaultPermission, a.Permission)

	_, err = ParseAuthority("Alice@active")
	assert.Error(t, err)
}

func TestSignAndValidate(t *testing.T) {
	signer := NewSigner(testSecret, "icp-bridge")
	token, err := signer.Sign(NewAuthority("icp.token", "callback"), time.Minute)
	require.NoError(t, err)

	got, err := NewValidator(testSecret, "icp-bridge").Validate(token)
	require.NoError(t, err)
	assert.Equal(t, Authority{Actor: "icp.token", Permission: "callback"}, got)

	_, err = NewValidator([]byte("other"), "icp-bridge").Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewValidator(testSecret, "someone-else").Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Expired(t *testing.T) {
	signer := NewSigner(testSecret, "")
	signer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := signer.Sign(NewAuthority("alice", ""), time.Minute)
	require.NoError(t, err)

	_, err = NewValidator(testSecret, "").Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	validator := NewValidator(testSecret, "")
	token, err := NewSigner(testSecret, "").Sign(NewAuthority("alice", ""), time.Minute)
	require.NoError(t, err)

	var seen Authority
	handler := Middleware(validator, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = AuthorityFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{name: "valid token", header: "Bearer " + token, code: http.StatusNoContent},
		{name: "missing header", header: "", code: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, code: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc.def.ghi", code: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
	assert.Equal(t, Authority{Actor: "alice", Permission: "active"}, seen)
}

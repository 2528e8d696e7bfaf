package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"adminconsole/internal/api"
	apperrors "adminconsole/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"id": "admin-1"}
	if !expiresAt.IsZero() {
		claims["exp"] = expiresAt.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func loginServer(t *testing.T, token string) *api.Client {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/admin/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var creds Credentials
		require.NoError(t, json.NewDecoder(req.Body).Decode(&creds))
		if creds.Password != "hunter22" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"status": "fail", "message": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"token":  token,
			"data": map[string]interface{}{
				"admin": map[string]string{
					"_id":   "admin-1",
					"name":  "Ops Admin",
					"email": creds.Email,
					"role":  "admin",
				},
			},
		})
	}).Methods(http.MethodPost)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return api.NewClientWithHTTP(srv.URL, srv.Client(), api.Anonymous(), nil)
}

func TestLoginInstallsTokenAndProfile(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	client := loginServer(t, token)
	sess := New(nil)

	admin, err := sess.Login(context.Background(), client, Credentials{Email: "ops@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "Ops Admin", admin.Name)
	assert.Equal(t, "ops@example.com", admin.Email)

	got, err := sess.Token()
	require.NoError(t, err)
	assert.Equal(t, token, got)
	assert.True(t, sess.Authenticated())
	assert.Equal(t, "admin-1", sess.Admin().ID)
}

func TestLoginValidatesCredentialsLocally(t *testing.T) {
	sess := New(nil)

	_, err := sess.Login(context.Background(), nil, Credentials{Email: "not-an-email", Password: "hunter22"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = sess.Login(context.Background(), nil, Credentials{Email: "ops@example.com", Password: "short"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginRejectedByServer(t *testing.T) {
	client := loginServer(t, signedToken(t, time.Now().Add(time.Hour)))
	sess := New(nil)

	_, err := sess.Login(context.Background(), client, Credentials{Email: "ops@example.com", Password: "wrongpass"})
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.False(t, sess.Authenticated())
}

func TestExpiredTokenFailsFast(t *testing.T) {
	client := loginServer(t, signedToken(t, time.Now().Add(-time.Minute)))
	sess := New(nil)

	_, err := sess.Login(context.Background(), client, Credentials{Email: "ops@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = sess.Token()
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)
	assert.False(t, sess.Authenticated())
}

func TestTokenWithoutExpNeverExpiresClientSide(t *testing.T) {
	client := loginServer(t, signedToken(t, time.Time{}))
	sess := New(nil)

	_, err := sess.Login(context.Background(), client, Credentials{Email: "ops@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.True(t, sess.Authenticated())
}

func TestLogoutClearsEverything(t *testing.T) {
	client := loginServer(t, signedToken(t, time.Now().Add(time.Hour)))
	sess := New(nil)

	_, err := sess.Login(context.Background(), client, Credentials{Email: "ops@example.com", Password: "hunter22"})
	require.NoError(t, err)

	sess.Logout()

	token, err := sess.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.Admin().ID)
}

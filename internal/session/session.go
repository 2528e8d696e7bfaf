// Package session holds the authenticated operator context. The token lives
// in an explicit Session value threaded to the API client, never in ambient
// process-wide storage, and logout invalidates it atomically.
package session

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"adminconsole/internal/api"
	apperrors "adminconsole/pkg/errors"
	"adminconsole/pkg/logger"
	"adminconsole/pkg/validator"

	"github.com/golang-jwt/jwt/v5"
)

// Admin is the operator profile the login response carries.
type Admin struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Credentials are the login inputs.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type Session struct {
	log      logger.Logger
	validate *validator.Validator

	mu        sync.RWMutex
	token     string
	admin     Admin
	expiresAt time.Time
}

func New(log logger.Logger) *Session {
	if log == nil {
		log = logger.NewNop()
	}
	return &Session{
		log:      log,
		validate: validator.New(),
	}
}

// Token implements api.TokenSource. It returns empty (no header) before
// login and fails once the token is past its decoded expiry.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", nil
	}
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return "", apperrors.ErrSessionExpired
	}
	return s.token, nil
}

// Login authenticates against the admin service and installs the returned
// token and profile.
func (s *Session) Login(ctx context.Context, client *api.Client, creds Credentials) (Admin, error) {
	if fieldErrs := s.validate.ValidateStructured(creds); fieldErrs != nil {
		return Admin{}, apperrors.Wrap(apperrors.ErrInvalidCredentials, formatFieldErrors(fieldErrs))
	}

	env, err := client.Post(ctx, "/admin/auth/login", creds)
	if err != nil {
		return Admin{}, err
	}
	if env.Token == "" {
		return Admin{}, apperrors.Wrap(apperrors.ErrMalformedEnvelope, "login response carried no token")
	}

	var data struct {
		Admin Admin `json:"admin"`
	}
	if err := env.DecodeData(&data); err != nil {
		return Admin{}, err
	}

	s.mu.Lock()
	s.token = env.Token
	s.admin = data.Admin
	s.expiresAt = tokenExpiry(env.Token)
	s.mu.Unlock()

	s.log.Info("operator logged in", map[string]interface{}{
		"admin": data.Admin.Email,
	})
	return data.Admin, nil
}

// Logout clears the session in one step.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.admin = Admin{}
	s.expiresAt = time.Time{}
	s.mu.Unlock()
	s.log.Info("operator logged out", nil)
}

// Authenticated reports whether a usable token is installed.
func (s *Session) Authenticated() bool {
	token, err := s.Token()
	return err == nil && token != ""
}

// Admin returns the logged-in operator profile.
func (s *Session) Admin() Admin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

func formatFieldErrors(fieldErrs map[string]string) string {
	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+fieldErrs[field])
	}
	return strings.Join(parts, "; ")
}

// tokenExpiry decodes the JWT exp claim without verifying the signature; the
// console has no key material and only uses it to fail fast on a dead token.
// Tokens without a readable exp get no client-side expiry.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

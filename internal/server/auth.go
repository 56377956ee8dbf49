package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// User is one entry in the users file. Passwords are stored as bcrypt
// hashes; AllowedTemplate restricts non-admin users to a single template.
type User struct {
	Name            string `json:"name"`
	HashedPassword  string `json:"hashed_password"`
	Admin           bool   `json:"admin,omitempty"`
	AllowedTemplate string `json:"allowed_template,omitempty"`
}

// UserStore holds the users loaded from the JSON users file.
type UserStore struct {
	users map[string]User
}

// LoadUsers reads the users file. The file is a JSON array of User objects.
func LoadUsers(path string) (*UserStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read users file %s: %w", path, err)
	}
	var list []User
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse users file %s: %w", path, err)
	}
	users := make(map[string]User, len(list))
	for _, u := range list {
		users[strings.ToLower(u.Name)] = u
	}
	return &UserStore{users: users}, nil
}

// Authenticate verifies a name/password pair against the stored bcrypt hash.
func (s *UserStore) Authenticate(name, password string) (*User, bool) {
	user, ok := s.users[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, false
	}
	return &user, true
}

// Lookup returns a user by name without verifying credentials.
func (s *UserStore) Lookup(name string) (*User, bool) {
	user, ok := s.users[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return &user, true
}

// TokenIssuer signs and verifies the short-lived HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

// NewTokenIssuer builds a token issuer from the shared secret.
func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), expiry: expiry}
}

// Issue creates an access token for the user.
func (t *TokenIssuer) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the subject username.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}

type contextKey string

const userContextKey contextKey = "user"

// requireAuth wraps a handler with bearer-token verification and attaches
// the authenticated user to the request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		username, err := s.tokens.Verify(tokenString)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		user, found := s.users.Lookup(username)
		if !found {
			writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}

func userFrom(r *http.Request) *User {
	user, _ := r.Context().Value(userContextKey).(*User)
	return user
}

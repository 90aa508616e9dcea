package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/Paul4805/AI-Dashboard-Tool/domain"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

// sessionTokenBytes gives 256 bits of entropy per token.
const sessionTokenBytes = 32

// Signup registers a new user. Returns domain.ErrDuplicateUsername
// when the username is taken.
func (s *Service) Signup(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.store.CreateUser(ctx, username, string(hash)); err != nil {
		return err
	}
	return nil
}

// Login verifies the credentials and issues a fresh session token,
// invalidating any previous session for the user. Returns
// domain.ErrInvalidCredentials for an unknown user or wrong password.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(s.cfg.SessionTTL)
	if err := s.store.CreateSession(ctx, user.ID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

// Logout deletes the session for the token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.store.DeleteSession(ctx, token)
}

// ResolveSession returns the user owning a live session token, or nil
// when the token is unknown or expired.
func (s *Service) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}
	return s.store.GetSessionUser(ctx, token)
}

// SessionTTL exposes the configured session lifetime, used for cookie
// expiry.
func (s *Service) SessionTTL() time.Duration {
	return s.cfg.SessionTTL
}

// generateSessionToken returns a URL-safe opaque token from a
// cryptographically secure source.
func generateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

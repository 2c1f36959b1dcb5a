package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"jetset_booking/internal/domain"
)

// AuthService logs users in against the remote origin and records the
// resulting user id in the session store.
type AuthService struct {
	remote   domain.Authenticator
	sessions domain.SessionStore
}

func NewAuthService(r domain.Authenticator, s domain.SessionStore) *AuthService {
	return &AuthService{remote: r, sessions: s}
}

// Login returns a new session id for the authenticated user.
func (a *AuthService) Login(ctx context.Context, c domain.Credentials) (sessionID string, userID int64, err error) {
	if err := validateForm(c); err != nil {
		return "", 0, err
	}
	userID, err = a.remote.Authenticate(ctx, c)
	if err != nil {
		return "", 0, err
	}
	sessionID, err = a.sessions.CreateSession(ctx, userID)
	if err != nil {
		return "", 0, fmt.Errorf("login: %w", err)
	}
	log.Info().Int64("user", userID).Msg("login ok")
	return sessionID, userID, nil
}

// Signup checks the form locally, including the retyped password, before
// calling the remote service.
func (a *AuthService) Signup(ctx context.Context, f domain.SignupForm) (string, error) {
	if err := validateForm(f); err != nil {
		return "", err
	}
	return a.remote.Register(ctx, f)
}

func (a *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return a.sessions.DeleteSession(ctx, sessionID)
}

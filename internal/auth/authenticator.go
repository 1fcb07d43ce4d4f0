// Package auth signs operators in and guards the dashboard routes.
package auth

import (
	"context"
	"net/http"

	"reservewise/internal/entities"
)

// Authenticator is the only view the rest of the app has of identity.
type Authenticator interface {
	CurrentUser(r *http.Request) (*entities.User, bool)
	SignIn(w http.ResponseWriter, r *http.Request, email, password string) (*entities.User, error)
	SignOut(w http.ResponseWriter, r *http.Request)
}

// SessionAuthenticator verifies with one Strategy and keeps the result in a
// session cookie.
type SessionAuthenticator struct {
	strategy Strategy
	sessions *Sessions
}

func NewAuthenticator(strategy Strategy, sessions *Sessions) *SessionAuthenticator {
	return &SessionAuthenticator{strategy: strategy, sessions: sessions}
}

func (a *SessionAuthenticator) CurrentUser(r *http.Request) (*entities.User, bool) {
	return a.sessions.Read(r)
}

func (a *SessionAuthenticator) SignIn(w http.ResponseWriter, r *http.Request, email, password string) (*entities.User, error) {
	u, err := a.strategy.Verify(r.Context(), email, password)
	if err != nil {
		return nil, err
	}
	if err := a.sessions.Issue(w, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (a *SessionAuthenticator) SignOut(w http.ResponseWriter, r *http.Request) {
	a.sessions.Clear(w)
}

type ctxKey struct{}

func WithUser(ctx context.Context, u *entities.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the user RequireUser stored, or nil.
func UserFromContext(ctx context.Context) *entities.User {
	u, _ := ctx.Value(ctxKey{}).(*entities.User)
	return u
}

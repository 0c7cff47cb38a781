package service

import (
	"context"
	"errors"
)

// ErrMissingCredentials is returned before any API call when a field is empty.
var ErrMissingCredentials = errors.New("username and password are required")

// State is a snapshot of the operator session.
type State struct {
	LoggedIn bool
	Username string
}

type SessionService interface {
	// Init restores the persisted session once at startup.
	Init(ctx context.Context) error
	Login(ctx context.Context, name string) error
	// SignIn checks credentials with the API and logs in on success.
	SignIn(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	State() State
}

// Authenticator validates credentials and returns the accepted display name.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Verifier confirms a restored username is still a known account.
type Verifier interface {
	WhoAmI(ctx context.Context, username string) error
}

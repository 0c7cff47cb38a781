package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"kaard/pkg/farmapi"
	"kaard/pkg/session/repository"
	"kaard/pkg/session/service"
)

// FallbackName is shown when the flag is persisted without a name.
const FallbackName = "Admin"

type sessionSvc struct {
	store    repository.Store
	auth     service.Authenticator
	verifier service.Verifier // nil disables verification
	log      *zap.Logger

	mu       sync.RWMutex
	loggedIn bool
	username string
}

func NewSessionService(store repository.Store, auth service.Authenticator, verifier service.Verifier, log *zap.Logger) service.SessionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &sessionSvc{store: store, auth: auth, verifier: verifier, log: log}
}

func (s *sessionSvc) Init(ctx context.Context) error {
	flag, _, err := s.store.Get(ctx, repository.KeyLoggedIn)
	if err != nil {
		return fmt.Errorf("read session flag: %w", err)
	}
	if flag != "true" {
		return nil
	}
	name, found, err := s.store.Get(ctx, repository.KeyUsername)
	if err != nil {
		return fmt.Errorf("read session user: %w", err)
	}
	if !found || name == "" {
		name = FallbackName
	}

	if s.verifier != nil {
		err := s.verifier.WhoAmI(ctx, name)
		var ae *farmapi.AuthError
		switch {
		case errors.As(err, &ae):
			s.log.Warn("persisted session rejected by api, clearing", zap.String("username", name))
			return s.clear(ctx)
		case err != nil:
			s.log.Warn("could not verify persisted session, keeping it", zap.String("username", name), zap.Error(err))
		}
	}

	s.mu.Lock()
	s.loggedIn, s.username = true, name
	s.mu.Unlock()
	s.log.Info("session restored", zap.String("username", name))
	return nil
}

// Login writes the username before the flag, so a stored flag always has its
// name next to it.
func (s *sessionSvc) Login(ctx context.Context, name string) error {
	if err := s.store.Set(ctx, repository.KeyUsername, name); err != nil {
		return fmt.Errorf("persist session user: %w", err)
	}
	if err := s.store.Set(ctx, repository.KeyLoggedIn, "true"); err != nil {
		if derr := s.store.Delete(ctx, repository.KeyUsername); derr != nil {
			s.log.Warn("drop session user", zap.Error(derr))
		}
		return fmt.Errorf("persist session flag: %w", err)
	}
	s.mu.Lock()
	s.loggedIn, s.username = true, name
	s.mu.Unlock()
	s.log.Info("logged in", zap.String("username", name))
	return nil
}

func (s *sessionSvc) SignIn(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return service.ErrMissingCredentials
	}
	name, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if name == "" {
		name = username
	}
	return s.Login(ctx, name)
}

func (s *sessionSvc) Logout(ctx context.Context) error {
	s.mu.RLock()
	name := s.username
	s.mu.RUnlock()
	if err := s.clear(ctx); err != nil {
		return err
	}
	s.log.Info("logged out", zap.String("username", name))
	return nil
}

// clear resets memory first so a storage failure never leaves the operator logged in.
func (s *sessionSvc) clear(ctx context.Context) error {
	s.mu.Lock()
	s.loggedIn, s.username = false, ""
	s.mu.Unlock()
	if err := s.store.Delete(ctx, repository.KeyLoggedIn, repository.KeyUsername); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *sessionSvc) State() service.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return service.State{LoggedIn: s.loggedIn, Username: s.username}
}

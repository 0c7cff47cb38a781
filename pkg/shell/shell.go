// Package shell gates the console behind the session and switches between
// tabs, releasing the page being left before the next one is activated.
package shell

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"kaard/pkg/session/service"
)

type PageName string

const (
	Dashboard  PageName = "dashboard"
	Crops      PageName = "crops"
	Equipment  PageName = "equipment"
	Production PageName = "production"
	Vehicles   PageName = "vehicles"
)

var ErrNotAuthenticated = errors.New("shell: not logged in")

// Parse maps a tab name to a page; unknown names fall back to the dashboard.
func Parse(name string) PageName {
	switch p := PageName(name); p {
	case Dashboard, Crops, Equipment, Production, Vehicles:
		return p
	}
	return Dashboard
}

// Page is anything the shell can mount. Activate returns the release func.
type Page interface {
	Activate(ctx context.Context) (release func())
}

type Shell struct {
	session service.SessionService
	pages   map[PageName]Page
	log     *zap.Logger

	mu      sync.Mutex
	active  PageName
	release func()
}

func New(session service.SessionService, pages map[PageName]Page, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shell{session: session, pages: pages, log: log, active: Dashboard}
}

// Active is the selected tab, dashboard until something else is chosen.
func (s *Shell) Active() PageName {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Navigate releases the current page and activates name, even when name is
// already active.
func (s *Shell) Navigate(ctx context.Context, name PageName) error {
	if !s.session.State().LoggedIn {
		return ErrNotAuthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigate(ctx, name)
	return nil
}

// Ensure activates name unless it is already mounted.
func (s *Shell) Ensure(ctx context.Context, name PageName) error {
	if !s.session.State().LoggedIn {
		return ErrNotAuthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == name && s.release != nil {
		return nil
	}
	s.navigate(ctx, name)
	return nil
}

func (s *Shell) navigate(ctx context.Context, name PageName) {
	name = Parse(string(name))
	s.releaseLocked()
	s.active = name
	page, ok := s.pages[name]
	if !ok {
		return
	}
	s.log.Debug("activate page", zap.String("page", string(name)))
	s.release = page.Activate(ctx)
}

func (s *Shell) releaseLocked() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
}

// Logout releases the page, resets to the dashboard and ends the session.
func (s *Shell) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.releaseLocked()
	s.active = Dashboard
	s.mu.Unlock()
	return s.session.Logout(ctx)
}

// Close releases whatever is mounted. Used on shutdown.
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
}

// Package session keeps the per-browser page state: the cart, whether the
// cart panel is open and a one-shot notice.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tomato-harvest/internal/cart"
	"tomato-harvest/internal/domain"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// State is the serialisable form of a session.
type State struct {
	Lines     []domain.CartLine `json:"lines"`
	PanelOpen bool              `json:"panelOpen"`
	Notice    string            `json:"notice,omitempty"`
}

// Backend stores session state. Load returns domain.ErrNotFound for unknown
// or expired sessions.
type Backend interface {
	Load(ctx context.Context, id string) (State, error)
	Save(ctx context.Context, id string, state State) error
	Delete(ctx context.Context, id string) error
}

// Session is the page state of one browser, rebuilt for every request.
type Session struct {
	ID        string
	Cart      *cart.Store
	PanelOpen bool
	Notice    string
}

func (s *Session) state() State {
	return State{
		Lines:     s.Cart.Lines(),
		PanelOpen: s.PanelOpen,
		Notice:    s.Notice,
	}
}

func (s State) isEmpty() bool {
	return len(s.Lines) == 0 && !s.PanelOpen && s.Notice == ""
}

const lockStripes = 64

// Manager loads, mutates and saves sessions. Updates to the same session id
// are applied one at a time.
type Manager struct {
	backend Backend
	catalog cart.Catalog
	logger  zerolog.Logger
	locks   [lockStripes]sync.Mutex
}

func NewManager(backend Backend, catalog cart.Catalog, logger zerolog.Logger) *Manager {
	return &Manager{backend: backend, catalog: catalog, logger: logger}
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an id issued by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Get returns the session, or an empty one if the id is unknown.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()
	return m.load(ctx, id)
}

// Update applies fn to the session and saves the result. Nothing is saved
// when fn returns an error. A session left with no lines, a closed panel and
// no notice is deleted instead of saved.
func (m *Manager) Update(ctx context.Context, id string, fn func(s *Session) error) (*Session, error) {
	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	s, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return s, err
	}
	state := s.state()
	if state.isEmpty() {
		if err := m.backend.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
			m.logger.Error().Err(err).Str("session", id).Msg("drop empty session")
			return nil, fmt.Errorf("delete session: %w", err)
		}
		return s, nil
	}
	if err := m.backend.Save(ctx, id, state); err != nil {
		m.logger.Error().Err(err).Str("session", id).Msg("save session")
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

// TakeNotice returns the session with its pending notice, clearing the notice
// so it is shown only once. It also refreshes the session's idle timer.
func (m *Manager) TakeNotice(ctx context.Context, id string) (*Session, string, error) {
	var notice string
	s, err := m.Update(ctx, id, func(s *Session) error {
		notice = s.Notice
		s.Notice = ""
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return s, notice, nil
}

func (m *Manager) load(ctx context.Context, id string) (*Session, error) {
	state, err := m.backend.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			m.logger.Error().Err(err).Str("session", id).Msg("load session")
			return nil, fmt.Errorf("load session: %w", err)
		}
		state = State{}
	}
	return &Session{
		ID:        id,
		Cart:      cart.Restore(m.catalog, state.Lines),
		PanelOpen: state.PanelOpen,
		Notice:    state.Notice,
	}, nil
}

func (m *Manager) lockFor(id string) *sync.Mutex {
	return &m.locks[xxhash.Sum64String(id)%lockStripes]
}

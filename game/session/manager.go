package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/banco-imobiliario/game/engine"
	"github.com/wricardo/banco-imobiliario/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// maxIDAttempts bounds the search for a free generated ID.
const maxIDAttempts = 16

// Manager handles game session lifecycle
type Manager struct {
	sessions map[string]*service.Session
	logger   zerolog.Logger
	mu       sync.RWMutex

	// gameOptions are appended to every new game, after the defaults
	gameOptions []engine.Option
}

// NewManager creates a new session manager
func NewManager(gameOptions ...engine.Option) *Manager {
	return &Manager{
		sessions:    make(map[string]*service.Session),
		logger:      log.Logger.With().Str("component", "session").Logger(),
		gameOptions: gameOptions,
	}
}

// Create starts a game and stores it under id. An empty id is replaced by
// a generated 4-character one.
func (m *Manager) Create(id string, spec service.SessionSpec) (*service.Session, error) {
	id = strings.TrimSpace(id)
	if strings.ContainsAny(id, "/ ") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}

	seed := spec.Seed
	if seed == 0 {
		var err error
		if seed, err = engine.NewSeed(); err != nil {
			return nil, fmt.Errorf("failed to seed game: %w", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		for i := 0; i < maxIDAttempts; i++ {
			candidate := generateSessionID()
			if !m.sessionExists(candidate) {
				id = candidate
				break
			}
		}
		if id == "" {
			return nil, fmt.Errorf("%w: no free session id", ErrSessionAlreadyExists)
		}
	} else if m.sessionExists(id) {
		return nil, fmt.Errorf("%w: %s", ErrSessionAlreadyExists, id)
	}

	opts := []engine.Option{
		engine.WithSeed(seed),
		engine.WithLogger(log.Logger.With().Str("component", "engine").Str("session", id).Logger()),
	}
	if spec.Rules != nil {
		opts = append(opts, engine.WithRules(spec.Rules))
	}
	opts = append(opts, m.gameOptions...)
	game, err := engine.NewGame(spec.Players, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	now := time.Now()
	session := &service.Session{
		ID:             id,
		Game:           game,
		RulesID:        spec.RulesID,
		Seed:           seed,
		AutoSettle:     spec.AutoSettle,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[strings.ToLower(id)] = session

	m.logger.Debug().Str("session", id).Uint64("seed", seed).Msg("session stored")
	return session, nil
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}

	return result
}

// Delete removes a session
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.sessions[lowerID]; !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(m.sessions, lowerID)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session and
// returns it
func (m *Manager) UpdateLastAccessed(id string) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return time.Time{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	session.LastAccessedAt = time.Now()
	return session.LastAccessedAt, nil
}

// LastAccessed returns when a session was last used
func (m *Manager) LastAccessed(id string) (time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return time.Time{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session.LastAccessedAt, nil
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the given duration
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, session := range m.sessions {
		if session.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		m.logger.Info().Int("removed", removed).Dur("max_age", maxAge).Msg("expired sessions removed")
	}
	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID generates a random 4-character session ID
func generateSessionID() string {
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func (m *Manager) sessionExists(id string) bool {
	_, exists := m.sessions[strings.ToLower(id)]
	return exists
}

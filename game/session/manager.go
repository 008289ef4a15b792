package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/tgames/game/engine"
	"github.com/wricardo/tgames/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// maxIDAttempts bounds the search for an unused generated ID
const maxIDAttempts = 64

// Manager keeps the board sessions of a table in memory, keyed
// case-insensitively, and mirrors them to persistence when one is set.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*service.Session
	persistence SessionPersistence
}

// NewManager creates a memory-only session manager
func NewManager() *Manager {
	return NewManagerWithPersistence(nil)
}

// NewManagerWithPersistence creates a session manager that saves every
// change through persistence
func NewManagerWithPersistence(persistence SessionPersistence) *Manager {
	return &Manager{
		sessions:    make(map[string]*service.Session),
		persistence: persistence,
	}
}

func key(id string) string {
	return strings.ToLower(id)
}

// Create builds a board from config and registers it under id. An empty id
// gets a generated one.
func (m *Manager) Create(id string, config *engine.BoardConfig) (*service.Session, error) {
	if id != "" && !validSessionID(id) {
		return nil, ErrInvalidSessionID
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	m.mu.Lock()
	if id == "" {
		if id, err = m.unusedIDLocked(); err != nil {
			m.mu.Unlock()
			return nil, err
		}
	} else if _, taken := m.sessions[key(id)]; taken {
		m.mu.Unlock()
		return nil, ErrSessionAlreadyExists
	}

	now := time.Now()
	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[key(id)] = session
	m.mu.Unlock()

	m.persist(session, "create")
	return session, nil
}

// unusedIDLocked generates an ID that is neither in memory nor on disk
func (m *Manager) unusedIDLocked() (string, error) {
	for range maxIDAttempts {
		id := generateSessionID()
		if _, taken := m.sessions[key(id)]; taken {
			continue
		}
		if m.persistence != nil && m.persistence.Exists(id) {
			continue
		}
		return id, nil
	}
	return "", fmt.Errorf("no free session ID after %d attempts", maxIDAttempts)
}

// Get returns the session with id, restoring it from persistence when it
// is not in memory
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[key(id)]
	m.mu.RUnlock()
	if ok {
		return session, nil
	}

	if m.persistence == nil || !validSessionID(id) || !m.persistence.Exists(id) {
		return nil, ErrSessionNotFound
	}

	restored, err := m.persistence.Load(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another caller may have restored it first
	if existing, ok := m.sessions[key(id)]; ok {
		return existing, nil
	}
	m.sessions[key(id)] = restored
	return restored, nil
}

// GetOrCreate returns the session with id, creating it from config when it
// does not exist
func (m *Manager) GetOrCreate(id string, config *engine.BoardConfig) (*service.Session, error) {
	session, err := m.Get(id)
	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, config)
	}
	return session, err
}

// List returns the sessions in memory, oldest first
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	m.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// Delete removes a session from memory and from persistence
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	_, inMemory := m.sessions[key(id)]
	delete(m.sessions, key(id))
	m.mu.Unlock()

	if m.persistence != nil && validSessionID(id) && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}
	if !inMemory {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteFromMemory drops a session from memory and leaves its file alone
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[key(id)]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, key(id))
	return nil
}

// UpdateLastAccessed marks a session as used now
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	session, ok := m.sessions[key(id)]
	if ok {
		session.LastAccessedAt = time.Now()
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	m.persist(session, "access update")
	return nil
}

// Save writes a session's board to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	session, ok := m.sessions[key(id)]
	m.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}
	return m.persistence.Save(session)
}

// CleanupExpiredSessions drops sessions idle for longer than maxAge from
// memory. Their files stay and are restored on the next Get.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for k, session := range m.sessions {
		if session.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, k)
			removed++
		}
	}
	return removed
}

// Count returns the number of sessions in memory
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// KindCounts returns how many sessions in memory use each board kind
func (m *Manager) KindCounts() map[engine.BoardKind]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[engine.BoardKind]int)
	for _, session := range m.sessions {
		counts[session.Config.Kind]++
	}
	return counts
}

// DescribeKinds formats KindCounts as "grid: 2, line: 1"
func (m *Manager) DescribeKinds() string {
	counts := m.KindCounts()
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	parts := make([]string, len(kinds))
	for i, kind := range kinds {
		parts[i] = fmt.Sprintf("%s: %d", kind, counts[engine.BoardKind(kind)])
	}
	return strings.Join(parts, ", ")
}

// LoadPersistedSessions restores every saved session not already in memory
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	ids, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	loaded := 0
	for _, id := range ids {
		m.mu.RLock()
		_, ok := m.sessions[key(id)]
		m.mu.RUnlock()
		if ok {
			continue
		}

		session, err := m.persistence.Load(id)
		if err != nil {
			log.Printf("Warning: Failed to load persisted session %s: %v", id, err)
			continue
		}

		m.mu.Lock()
		if _, ok := m.sessions[key(id)]; !ok {
			m.sessions[key(id)] = session
			loaded++
		}
		m.mu.Unlock()
	}

	if loaded > 0 {
		log.Printf("Loaded %d persisted sessions from storage (%s)", loaded, m.DescribeKinds())
	}
	return nil
}

// SaveAllSessions writes every session in memory to persistence
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	failed := 0
	for _, session := range m.List() {
		if err := m.persistence.Save(session); err != nil {
			log.Printf("Warning: Failed to save session %s: %v", session.ID, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to save %d sessions", failed)
	}
	return nil
}

// persist saves a session and logs instead of failing the caller
func (m *Manager) persist(session *service.Session, after string) {
	if m.persistence == nil {
		return
	}
	if err := m.persistence.Save(session); err != nil {
		log.Printf("Warning: Failed to persist session %s after %s: %v", session.ID, after, err)
	}
}

// generateSessionID returns a random 4-character hex ID
func generateSessionID() string {
	b := make([]byte, 2)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// validSessionID rejects IDs that could escape the sessions directory
func validSessionID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && !strings.Contains(id, "..")
}

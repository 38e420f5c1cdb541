// Package csrf issues and verifies synchronizer tokens kept in a session
// store. Tokens are 256-bit values from a cryptographically secure source,
// hex encoded, and compared in constant time.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	// DefaultFieldName is the hidden input carrying the token.
	DefaultFieldName = "_csrf_token"
	// DefaultSessionKey is the session key the token is stored under.
	DefaultSessionKey = "_csrf_token"
	// TokenBytes is the amount of entropy per token (256 bits).
	TokenBytes = 32
)

var (
	// ErrNoStore is returned when a manager has no session store to persist to.
	ErrNoStore = errors.New("csrf: session store is required")
	// ErrShortRead is returned when the random source runs dry.
	ErrShortRead = errors.New("csrf: random source returned too few bytes")
)

// Store is the session-like key/value collaborator holding the token.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Option configures a Manager.
type Option func(*Manager)

// WithRandom overrides the random source. Tests use it to make tokens
// deterministic; production code should keep crypto/rand.
func WithRandom(r io.Reader) Option {
	return func(m *Manager) {
		if r != nil {
			m.random = r
		}
	}
}

// WithSessionKey overrides the session key.
func WithSessionKey(key string) Option {
	return func(m *Manager) {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			m.sessionKey = trimmed
		}
	}
}

// WithFieldName overrides the hidden input name.
func WithFieldName(name string) Option {
	return func(m *Manager) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			m.fieldName = trimmed
		}
	}
}

// Manager issues and validates tokens for one session store.
type Manager struct {
	store      Store
	random     io.Reader
	sessionKey string
	fieldName  string
}

// New constructs a Manager bound to store.
func New(store Store, options ...Option) *Manager {
	m := &Manager{
		store:      store,
		random:     rand.Reader,
		sessionKey: DefaultSessionKey,
		fieldName:  DefaultFieldName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// FieldName returns the hidden input name.
func (m *Manager) FieldName() string {
	return m.fieldName
}

// Token returns the stored token, generating and persisting one when the
// session has none yet.
func (m *Manager) Token() (string, error) {
	if m == nil || m.store == nil {
		return "", ErrNoStore
	}
	if token, ok := m.store.Get(m.sessionKey); ok && token != "" {
		return token, nil
	}
	token, err := GenerateToken(m.random, TokenBytes)
	if err != nil {
		return "", err
	}
	if err := m.store.Set(m.sessionKey, token); err != nil {
		return "", fmt.Errorf("csrf: persist token: %w", err)
	}
	return token, nil
}

// Validate compares submitted with the stored token in constant time. Empty
// values never validate.
func (m *Manager) Validate(submitted string) bool {
	if m == nil || m.store == nil || submitted == "" {
		return false
	}
	stored, ok := m.store.Get(m.sessionKey)
	if !ok || stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

// GenerateToken reads n bytes from r and hex encodes them.
func GenerateToken(r io.Reader, n int) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return "", ErrShortRead
		}
		return "", fmt.Errorf("csrf: read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// MemoryStore is a concurrency-safe in-process Store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Store.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

// Set implements Store.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}

// Package session provides a small cookie-keyed, in-memory session registry
// for net/http hosts. Each Session satisfies csrf.Store. Sessions expire after
// an idle timeout and the registry holds at most a fixed number of them.
package session

import (
	"crypto/rand"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/csrf"
)

// DefaultCookieName is the cookie carrying the session id.
const DefaultCookieName = "formbuilder_session"

// Registry defaults.
const (
	DefaultIdleTimeout = 30 * time.Minute
	DefaultMaxSessions = 10000
)

const idBytes = 16

// Session holds string values for one browser session.
type Session struct {
	id       string
	mu       sync.RWMutex
	values   map[string]string
	lastSeen time.Time // guarded by Registry.mu
}

var _ csrf.Store = (*Session)(nil)

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Get implements csrf.Store.
func (s *Session) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

// Set implements csrf.Store.
func (s *Session) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Option configures a Registry.
type Option func(*Registry)

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(r *Registry) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			r.cookieName = trimmed
		}
	}
}

// WithSecure marks the session cookie Secure.
func WithSecure(secure bool) Option {
	return func(r *Registry) {
		r.secure = secure
	}
}

// WithRandom overrides the source used for session ids.
func WithRandom(random io.Reader) Option {
	return func(r *Registry) {
		if random != nil {
			r.random = random
		}
	}
}

// WithIdleTimeout sets how long a session survives without requests.
func WithIdleTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.idleTimeout = d
		}
	}
}

// WithMaxSessions caps the number of live sessions. Starting a session at
// the cap evicts the least recently seen one.
func WithMaxSessions(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxSessions = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// Registry tracks live sessions by id.
type Registry struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	cookieName  string
	secure      bool
	random      io.Reader
	idleTimeout time.Duration
	maxSessions int
	now         func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry(options ...Option) *Registry {
	r := &Registry{
		sessions:    make(map[string]*Session),
		cookieName:  DefaultCookieName,
		random:      rand.Reader,
		idleTimeout: DefaultIdleTimeout,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Start returns the session referenced by the request cookie, creating one
// (and setting the cookie on w) when the cookie is absent, unknown or
// expired.
func (r *Registry) Start(w http.ResponseWriter, req *http.Request) (*Session, error) {
	if cookie, err := req.Cookie(r.cookieName); err == nil && cookie.Value != "" {
		if sess, ok := r.Get(cookie.Value); ok {
			return sess, nil
		}
	}

	id, err := csrf.GenerateToken(r.random, idBytes)
	if err != nil {
		return nil, fmt.Errorf("session: generate id: %w", err)
	}

	r.mu.Lock()
	now := r.now()
	r.pruneLocked(now)
	if len(r.sessions) >= r.maxSessions {
		r.evictOldestLocked()
	}
	sess := &Session{id: id, values: make(map[string]string), lastSeen: now}
	r.sessions[id] = sess
	r.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     r.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(r.idleTimeout / time.Second),
		HttpOnly: true,
		Secure:   r.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

// Get looks up a live session by id and refreshes its idle deadline. An
// expired session is dropped.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	now := r.now()
	if r.expired(sess, now) {
		delete(r.sessions, id)
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

// Destroy forgets a session.
func (r *Registry) Destroy(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Prune drops every expired session and reports how many were removed.
func (r *Registry) Prune() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pruneLocked(r.now())
}

// Len reports the number of sessions held, expired or not.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) expired(sess *Session, now time.Time) bool {
	return now.Sub(sess.lastSeen) >= r.idleTimeout
}

func (r *Registry) pruneLocked(now time.Time) int {
	removed := 0
	for id, sess := range r.sessions {
		if r.expired(sess, now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) evictOldestLocked() {
	var oldest *Session
	for _, sess := range r.sessions {
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	if oldest != nil {
		delete(r.sessions, oldest.id)
	}
}

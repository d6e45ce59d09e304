// Package session holds the single signed-in identity of the agent and tells
// observers when it ends.
package session

import (
	"errors"
	"sync"
	"time"

	"stayease/pkg/logger"
	"stayease/pkg/model"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptyToken = errors.New("access token is empty")

type Reason string

const (
	ReasonSignedOut    Reason = "SIGNED_OUT"
	ReasonUnauthorized Reason = "UNAUTHORIZED"
	ReasonForbidden    Reason = "FORBIDDEN"
	ReasonExpired      Reason = "EXPIRED"
)

// Claims are the fields the server puts in its access tokens. They are read
// without verifying the signature; the server remains the only authority.
type Claims struct {
	ID   int64      `json:"id"`
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Ended is delivered to subscribers when an active session ends.
type Ended struct {
	Reason Reason
	Status int
	User   model.User
}

type Manager struct {
	mu     sync.RWMutex
	token  string
	user   *model.User
	claims *Claims

	subsMu  sync.Mutex
	subs    map[int]func(Ended)
	nextSub int
	closed  bool

	now func() time.Time
	log *logger.Logger
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(log *logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		subs: make(map[int]func(Ended)),
		now:  time.Now,
		log:  log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start replaces any current session. Tokens that are not JWTs are accepted
// as opaque credentials with no known expiry.
func (m *Manager) Start(token string, user model.User) error {
	if token == "" {
		return ErrEmptyToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		m.log.Debug("Access token is not a readable JWT", "error", err)
		claims = nil
	}

	if claims != nil && user.Role == "" {
		user.Role = claims.Role
	}

	m.mu.Lock()
	m.token = token
	m.user = &user
	m.claims = claims
	m.mu.Unlock()

	m.log.Info("Session started",
		"user_id", user.ID,
		"role", user.Role,
		"expires_at", m.ExpiresAt(),
	)
	return nil
}

// UpdateUser replaces the signed-in user's profile and keeps the token. It
// reports false when nobody is signed in.
func (m *Manager) UpdateUser(user model.User) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return false
	}
	if user.Role == "" {
		user.Role = m.user.Role
	}
	m.user = &user
	return true
}

// End clears the session. Subscribers hear about it only if one was active.
func (m *Manager) End(reason Reason) {
	m.end(reason, 0)
}

func (m *Manager) end(reason Reason, status int) {
	m.mu.Lock()
	if m.token == "" {
		m.mu.Unlock()
		return
	}
	user := *m.user
	m.token = ""
	m.user = nil
	m.claims = nil
	m.mu.Unlock()

	m.log.Info("Session ended", "reason", reason, "status", status, "user_id", user.ID)

	event := Ended{Reason: reason, Status: status, User: user}
	for _, fn := range m.subscribers() {
		fn(event)
	}
}

// Token returns the bearer credential, or "" when signed out. An expired
// token ends the session before it is ever sent.
func (m *Manager) Token() string {
	m.mu.RLock()
	token, claims := m.token, m.claims
	m.mu.RUnlock()

	if token == "" {
		return ""
	}
	if claims != nil && claims.ExpiresAt != nil && !m.now().Before(claims.ExpiresAt.Time) {
		m.end(ReasonExpired, 0)
		return ""
	}
	return token
}

// User returns a copy of the signed-in user, or nil.
func (m *Manager) User() *model.User {
	if m.Token() == "" {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

func (m *Manager) Role() model.Role {
	if u := m.User(); u != nil {
		return u.Role
	}
	return ""
}

// ExpiresAt is the zero time when the token carries no expiry.
func (m *Manager) ExpiresAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.claims == nil || m.claims.ExpiresAt == nil {
		return time.Time{}
	}
	return m.claims.ExpiresAt.Time
}

// NotifyUnauthorized is called by the transport for every 401 or 403.
func (m *Manager) NotifyUnauthorized(status int) {
	reason := ReasonUnauthorized
	if status == 403 {
		reason = ReasonForbidden
	}
	m.end(reason, status)
}

// Subscribe registers fn for session-ended events and returns the function
// that removes it. After Close it registers nothing.
func (m *Manager) Subscribe(fn func(Ended)) func() {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()

	if m.closed {
		return func() {}
	}
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			m.subsMu.Lock()
			delete(m.subs, id)
			m.subsMu.Unlock()
		})
	}
}

func (m *Manager) subscribers() []func(Ended) {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	fns := make([]func(Ended), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	return fns
}

// Close drops every subscription. The session itself is left as is.
func (m *Manager) Close() {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	m.closed = true
	m.subs = make(map[int]func(Ended))
}

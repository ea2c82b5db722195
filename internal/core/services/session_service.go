package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

// Messages returned in LoginResult.Error
const (
	MsgMissingCredentials = "Email and password are required"
	MsgInvalidCredentials = "Invalid email or password"
	MsgUserInactive       = "This account has been deactivated"
	MsgLoginInProgress    = "A sign-in is already in progress"
	MsgLoginCancelled     = "Sign-in was cancelled"
)

// LoginResult is the outcome of an expected login attempt
type LoginResult struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// SessionListener is called after every state transition
type SessionListener func(state domain.AuthState, user *domain.User)

type sessionSnapshot struct {
	Token string `json:"token"`
}

// SessionManager is the single authority on who is signed in at this
// workstation
type SessionManager struct {
	auth  ports.AuthGateway
	snaps ports.SnapshotStore

	mu      sync.RWMutex
	state   domain.AuthState
	session *domain.Session
	gen     uint64

	listenMu  sync.Mutex
	listeners []SessionListener
}

// NewSessionManager creates an unauthenticated session manager
func NewSessionManager(auth ports.AuthGateway, snaps ports.SnapshotStore) *SessionManager {
	return &SessionManager{
		auth:  auth,
		snaps: snaps,
		state: domain.Unauthenticated,
	}
}

// Subscribe registers fn for state transitions
func (m *SessionManager) Subscribe(fn SessionListener) {
	m.listenMu.Lock()
	defer m.listenMu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Login signs in with email and password. Wrong credentials and inactive
// accounts are reported in the result; the error is only set when the remote
// service could not be reached.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return &LoginResult{Error: MsgMissingCredentials}, nil
	}

	m.mu.RLock()
	busy := m.state == domain.Authenticating
	signedIn := m.session != nil
	m.mu.RUnlock()
	if busy {
		return &LoginResult{Error: MsgLoginInProgress}, nil
	}
	// A new operator replaces the current one
	if signedIn {
		m.Logout(ctx)
	}

	m.mu.Lock()
	if m.state == domain.Authenticating {
		m.mu.Unlock()
		return &LoginResult{Error: MsgLoginInProgress}, nil
	}
	m.state = domain.Authenticating
	gen := m.gen
	m.mu.Unlock()
	m.notify(domain.Authenticating, nil)

	session, err := m.auth.SignIn(ctx, email, password)
	if err != nil {
		m.fail(gen)
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return &LoginResult{Error: MsgInvalidCredentials}, nil
		case errors.Is(err, domain.ErrUserInactive):
			return &LoginResult{Error: MsgUserInactive}, nil
		}
		log.Printf("❌ Sign-in failed for %s: %v", email, err)
		return nil, fmt.Errorf("sign in: %w", err)
	}

	m.mu.Lock()
	if m.gen != gen {
		// Logout ran while the request was in flight
		m.mu.Unlock()
		if err := m.auth.SignOut(ctx, session.Token); err != nil {
			log.Printf("⚠️ Failed to revoke cancelled session: %v", err)
		}
		return &LoginResult{Error: MsgLoginCancelled}, nil
	}
	m.state = domain.Authenticated
	m.session = session
	m.mu.Unlock()

	persistSession(m.snaps, session.Token)
	log.Printf("✅ %s signed in as %s", session.User.Email, session.User.Role)

	user := session.User
	m.notify(domain.Authenticated, &user)
	return &LoginResult{Success: true, User: &user}, nil
}

// Logout ends the current session. It is a no-op when nobody is signed in.
// The local session is always cleared; a failed remote sign-out is only
// logged.
func (m *SessionManager) Logout(ctx context.Context) {
	m.mu.Lock()
	if m.state == domain.Unauthenticated && m.session == nil {
		m.mu.Unlock()
		return
	}
	var token string
	if m.session != nil {
		token = m.session.Token
	}
	m.state = domain.Unauthenticated
	m.session = nil
	m.gen++
	m.mu.Unlock()

	persistSession(m.snaps, "")
	if token != "" {
		if err := m.auth.SignOut(ctx, token); err != nil {
			log.Printf("⚠️ Remote sign-out failed: %v", err)
		}
	}
	m.notify(domain.Unauthenticated, nil)
}

// Restore resumes the session saved by a previous run if the remote service
// still accepts its token
func (m *SessionManager) Restore(ctx context.Context) error {
	m.mu.RLock()
	idle := m.state == domain.Unauthenticated
	m.mu.RUnlock()
	if !idle || m.snaps == nil {
		return nil
	}

	var snap sessionSnapshot
	found, err := m.snaps.Load(ctx, ports.SnapshotSession, &snap)
	if err != nil {
		log.Printf("⚠️ Ignoring unreadable session snapshot: %v", err)
		return nil
	}
	if !found || snap.Token == "" {
		return nil
	}

	session, err := m.auth.GetSession(ctx, snap.Token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) || errors.Is(err, domain.ErrTokenExpired) ||
			errors.Is(err, domain.ErrSessionRevoked) || errors.Is(err, domain.ErrUserInactive) {
			log.Printf("⚠️ Saved session discarded: %v", err)
			persistSession(m.snaps, "")
			return nil
		}
		return fmt.Errorf("restore session: %w", err)
	}

	m.mu.Lock()
	if m.state != domain.Unauthenticated {
		m.mu.Unlock()
		return nil
	}
	m.state = domain.Authenticated
	m.session = session
	m.mu.Unlock()

	log.Printf("✅ Session restored for %s", session.User.Email)
	user := session.User
	m.notify(domain.Authenticated, &user)
	return nil
}

// Authenticate checks a bearer token against the current session and returns
// the signed-in user
func (m *SessionManager) Authenticate(token string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil || token == "" || token != m.session.Token {
		return nil, domain.ErrUnauthorized
	}
	if !m.session.ExpiresAt.IsZero() && time.Now().After(m.session.ExpiresAt) {
		return nil, domain.ErrTokenExpired
	}
	user := m.session.User
	return &user, nil
}

// SyncUser replaces the cached profile of the signed-in operator with the
// matching entry of users. Role and status changes apply to the next request;
// a deactivated operator is signed out.
func (m *SessionManager) SyncUser(users []domain.User) {
	m.mu.Lock()
	if m.session == nil {
		m.mu.Unlock()
		return
	}
	var (
		latest domain.User
		found  bool
	)
	for _, u := range users {
		if u.ID == m.session.User.ID {
			latest, found = u, true
			break
		}
	}
	if !found {
		m.mu.Unlock()
		return
	}
	latest.Password = ""
	m.session.User = latest
	m.mu.Unlock()

	if !latest.IsActive() {
		log.Printf("⚠️ %s was deactivated, ending session", latest.Email)
		m.Logout(context.Background())
	}
}

// State returns the current state
func (m *SessionManager) State() domain.AuthState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsAuthenticated reports whether a user is signed in
func (m *SessionManager) IsAuthenticated() bool {
	return m.State() == domain.Authenticated
}

// CurrentUser returns a copy of the signed-in user, or nil
func (m *SessionManager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != domain.Authenticated || m.session == nil {
		return nil
	}
	user := m.session.User
	return &user
}

// Session returns a copy of the current session, or nil
func (m *SessionManager) Session() *domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil
	}
	s := *m.session
	return &s
}

func (m *SessionManager) fail(gen uint64) {
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return
	}
	m.state = domain.Unauthenticated
	m.session = nil
	m.mu.Unlock()
	m.notify(domain.Unauthenticated, nil)
}

func (m *SessionManager) notify(state domain.AuthState, user *domain.User) {
	m.listenMu.Lock()
	listeners := append([]SessionListener(nil), m.listeners...)
	m.listenMu.Unlock()
	for _, fn := range listeners {
		fn(state, user)
	}
}

func persistSession(snaps ports.SnapshotStore, token string) {
	if snaps == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := snaps.Save(ctx, ports.SnapshotSession, sessionSnapshot{Token: token}); err != nil {
		log.Printf("❌ Failed to save session snapshot: %v", err)
	}
}

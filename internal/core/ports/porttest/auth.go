package porttest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
)

type credential struct {
	user     domain.User
	password string
}

// Auth is an in-memory ports.AuthGateway
type Auth struct {
	mu       sync.Mutex
	users    map[string]credential
	sessions map[string]*domain.Session
	seq      int
	err      error
	signOuts int
}

// NewAuth creates an empty auth gateway
func NewAuth() *Auth {
	return &Auth{
		users:    make(map[string]credential),
		sessions: make(map[string]*domain.Session),
	}
}

// AddUser registers a user that can sign in with password
func (a *Auth) AddUser(user domain.User, password string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.users[user.Email] = credential{user: user, password: password}
}

// FailWith makes every call return err (a transport failure). nil clears it.
func (a *Auth) FailWith(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.err = err
}

// SignOuts returns the number of SignOut calls
func (a *Auth) SignOuts() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.signOuts
}

func (a *Auth) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return nil, a.err
	}
	cred, ok := a.users[email]
	if !ok || cred.password != password {
		return nil, domain.ErrInvalidCredentials
	}
	if !cred.user.IsActive() {
		return nil, domain.ErrUserInactive
	}
	a.seq++
	session := &domain.Session{
		Token:     fmt.Sprintf("token-%d", a.seq),
		User:      cred.user,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	a.sessions[session.Token] = session
	return session, nil
}

func (a *Auth) SignOut(ctx context.Context, token string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.signOuts++
	if a.err != nil {
		return a.err
	}
	delete(a.sessions, token)
	return nil
}

func (a *Auth) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return nil, a.err
	}
	session, ok := a.sessions[token]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	s := *session
	return &s, nil
}

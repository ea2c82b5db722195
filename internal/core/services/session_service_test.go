package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/snapshot"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports/porttest"
)

var errTransport = errors.New("connection refused")

var (
	admin = domain.User{ID: "u-admin", Name: "Admin User", Email: "admin@rxnexus.com", Role: domain.RoleAdministrator, Status: domain.StatusActive}
	pharm = domain.User{ID: "u-pharm", Name: "Pharmacist", Email: "pharmacist@rxnexus.com", Role: domain.RolePharmacist, Status: domain.StatusActive}
)

func newSessionManager(t *testing.T) (*SessionManager, *porttest.Auth, *snapshot.MemoryStore) {
	t.Helper()
	auth := porttest.NewAuth()
	auth.AddUser(admin, "password123")
	auth.AddUser(pharm, "password123")
	auth.AddUser(domain.User{ID: "u-gone", Email: "gone@rxnexus.com", Status: domain.StatusInactive}, "password123")
	snaps := snapshot.NewMemory()
	return NewSessionManager(auth, snaps), auth, snaps
}

func TestSessionManager_LoginSuccess(t *testing.T) {
	m, _, _ := newSessionManager(t)

	res, err := m.Login(context.Background(), "admin@rxnexus.com", "password123")

	require.NoError(t, err)
	assert.True(t, res.Success)
	require.NotNil(t, res.User)
	assert.Equal(t, "u-admin", res.User.ID)
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "u-admin", m.CurrentUser().ID)
}

func TestSessionManager_LoginWrongPassword(t *testing.T) {
	m, _, _ := newSessionManager(t)

	res, err := m.Login(context.Background(), "admin@rxnexus.com", "wrong")

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.CurrentUser())
}

func TestSessionManager_LoginExpectedFailures(t *testing.T) {
	m, _, _ := newSessionManager(t)
	ctx := context.Background()

	res, err := m.Login(ctx, "gone@rxnexus.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, MsgUserInactive, res.Error)

	res, err = m.Login(ctx, "  ", "")
	require.NoError(t, err)
	assert.Equal(t, MsgMissingCredentials, res.Error)
	assert.Equal(t, domain.Unauthenticated, m.State())
}

func TestSessionManager_LoginTransportFailure(t *testing.T) {
	m, auth, _ := newSessionManager(t)
	auth.FailWith(errTransport)

	res, err := m.Login(context.Background(), "admin@rxnexus.com", "password123")

	require.ErrorIs(t, err, errTransport)
	assert.Nil(t, res)
	assert.Equal(t, domain.Unauthenticated, m.State())
}

func TestSessionManager_Transitions(t *testing.T) {
	m, _, _ := newSessionManager(t)
	ctx := context.Background()
	var seen []domain.AuthState
	m.Subscribe(func(state domain.AuthState, _ *domain.User) { seen = append(seen, state) })

	_, err := m.Login(ctx, "admin@rxnexus.com", "bad")
	require.NoError(t, err)
	_, err = m.Login(ctx, "admin@rxnexus.com", "password123")
	require.NoError(t, err)
	m.Logout(ctx)

	assert.Equal(t, []domain.AuthState{
		domain.Authenticating, domain.Unauthenticated,
		domain.Authenticating, domain.Authenticated,
		domain.Unauthenticated,
	}, seen)
}

func TestSessionManager_LogoutIsIdempotent(t *testing.T) {
	m, auth, _ := newSessionManager(t)
	ctx := context.Background()
	notified := 0
	m.Subscribe(func(domain.AuthState, *domain.User) { notified++ })

	m.Logout(ctx)
	assert.Zero(t, notified)
	assert.Zero(t, auth.SignOuts())

	_, err := m.Login(ctx, "admin@rxnexus.com", "password123")
	require.NoError(t, err)
	m.Logout(ctx)
	m.Logout(ctx)

	assert.Equal(t, 1, auth.SignOuts())
	assert.False(t, m.IsAuthenticated())
}

func TestSessionManager_LogoutClearsLocallyWhenRemoteFails(t *testing.T) {
	m, auth, _ := newSessionManager(t)
	ctx := context.Background()
	_, err := m.Login(ctx, "admin@rxnexus.com", "password123")
	require.NoError(t, err)

	auth.FailWith(errTransport)
	m.Logout(ctx)

	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.Session())
}

func TestSessionManager_LoginReplacesOperator(t *testing.T) {
	m, auth, _ := newSessionManager(t)
	ctx := context.Background()
	_, err := m.Login(ctx, "admin@rxnexus.com", "password123")
	require.NoError(t, err)

	res, err := m.Login(ctx, "pharmacist@rxnexus.com", "password123")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "u-pharm", m.CurrentUser().ID)
	assert.Equal(t, 1, auth.SignOuts())
}

func TestSessionManager_RestoreResumesSavedSession(t *testing.T) {
	m, auth, snaps := newSessionManager(t)
	ctx := context.Background()
	_, err := m.Login(ctx, "admin@rxnexus.com", "password123")
	require.NoError(t, err)

	restarted := NewSessionManager(auth, snaps)
	var states []domain.AuthState
	restarted.Subscribe(func(s domain.AuthState, _ *domain.User) { states = append(states, s) })

	require.NoError(t, restarted.Restore(ctx))

	assert.True(t, restarted.IsAuthenticated())
	assert.Equal(t, "u-admin", restarted.CurrentUser().ID)
	assert.Equal(t, []domain.AuthState{domain.Authenticated}, states)
}

func TestSessionManager_RestoreDiscardsInvalidToken(t *testing.T) {
	auth := porttest.NewAuth()
	snaps := snapshot.NewMemory()
	require.NoError(t, snaps.Save(context.Background(), ports.SnapshotSession, sessionSnapshot{Token: "stale"}))
	m := NewSessionManager(auth, snaps)

	require.NoError(t, m.Restore(context.Background()))

	assert.False(t, m.IsAuthenticated())
	var snap sessionSnapshot
	_, err := snaps.Load(context.Background(), ports.SnapshotSession, &snap)
	require.NoError(t, err)
	assert.Empty(t, snap.Token)
}

func TestSessionManager_RestoreTransportFailure(t *testing.T) {
	m, auth, snaps := newSessionManager(t)
	ctx := context.Background()
	_, err := m.Login(ctx, "admin@rxnexus.com", "password123")
	require.NoError(t, err)

	auth.FailWith(errTransport)
	restarted := NewSessionManager(auth, snaps)

	require.ErrorIs(t, restarted.Restore(ctx), errTransport)
	assert.False(t, restarted.IsAuthenticated())
}

func TestSessionManager_Authenticate(t *testing.T) {
	m, _, _ := newSessionManager(t)
	ctx := context.Background()

	_, err := m.Authenticate("token-1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = m.Login(ctx, "admin@rxnexus.com", "password123")
	require.NoError(t, err)
	token := m.Session().Token

	user, err := m.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "u-admin", user.ID)

	_, err = m.Authenticate("someone-else")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSessionManager_SyncUserAppliesProfileChanges(t *testing.T) {
	m, _, _ := newSessionManager(t)
	ctx := context.Background()

	_, err := m.Login(ctx, "pharmacist@rxnexus.com", "password123")
	require.NoError(t, err)
	token := m.Session().Token

	promoted := pharm
	promoted.Role = domain.RoleAdministrator
	m.SyncUser([]domain.User{admin, promoted})

	user, err := m.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdministrator, user.Role)
	assert.Equal(t, domain.RoleAdministrator, m.CurrentUser().Role)

	m.SyncUser([]domain.User{admin})
	assert.Equal(t, domain.RoleAdministrator, m.CurrentUser().Role)

	deactivated := promoted
	deactivated.Status = domain.StatusInactive
	m.SyncUser([]domain.User{deactivated})

	assert.False(t, m.IsAuthenticated())
	_, err = m.Authenticate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSessionManager_SyncUserWithoutSessionIsNoop(t *testing.T) {
	m, _, _ := newSessionManager(t)

	m.SyncUser([]domain.User{admin})

	assert.Nil(t, m.CurrentUser())
	assert.Equal(t, domain.Unauthenticated, m.State())
}

package stores

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

type usersSnapshot struct {
	Users     []domain.User            `json:"users"`
	Overrides map[string]domain.Matrix `json:"overrides"`
}

// UserStore is the staff profile collection together with the role default
// matrices and per-user permission overrides
type UserStore struct {
	*Store[domain.User, string]

	perms ports.PermissionGateway
	snaps ports.SnapshotStore
	roles map[domain.Role]domain.Matrix

	ovMu      sync.RWMutex
	overrides map[string]domain.Matrix
	ovVersion uint64
}

// NewUsers creates the user store and restores the users snapshot
func NewUsers(table ports.Table[domain.User, string], perms ports.PermissionGateway, snaps ports.SnapshotStore) *UserStore {
	var snap usersSnapshot
	restore(snaps, ports.SnapshotUsers, &snap)
	if snap.Overrides == nil {
		snap.Overrides = make(map[string]domain.Matrix)
	}

	s := &UserStore{
		Store: New[domain.User, string]("users", table, Options[domain.User]{
			Defaults: func(u domain.User) domain.User {
				if u.Status == "" {
					u.Status = domain.StatusActive
				}
				return u
			},
		}, snap.Users...),
		perms:     perms,
		snaps:     snaps,
		roles:     domain.DefaultRoleMatrices(),
		overrides: snap.Overrides,
	}
	s.Observe(func(users []domain.User) { s.save(users) })
	return s
}

// FetchAll reloads the profiles and the permission overrides. Both halves
// are attempted; their errors are joined.
func (s *UserStore) FetchAll(ctx context.Context) error {
	usersErr := s.Store.FetchAll(ctx)

	s.ovMu.RLock()
	started := s.ovVersion
	s.ovMu.RUnlock()

	overrides, err := s.perms.ListOverrides(ctx)
	if err != nil {
		log.Printf("❌ Error fetching permission overrides: %v", err)
		return errors.Join(usersErr, fmt.Errorf("fetch overrides: %w", err))
	}

	s.ovMu.Lock()
	if s.ovVersion != started {
		s.ovMu.Unlock()
		log.Printf("⚠️ Discarding stale permission override fetch (changed while in flight)")
		return usersErr
	}
	s.overrides = overrides
	if s.overrides == nil {
		s.overrides = make(map[string]domain.Matrix)
	}
	s.ovVersion++
	s.ovMu.Unlock()

	s.save(s.All())
	return usersErr
}

// Delete removes the profile and drops its permission override
func (s *UserStore) Delete(ctx context.Context, id string) error {
	err := s.Store.Delete(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if s.dropOverride(id) {
		if derr := s.perms.DeleteOverride(ctx, id); derr != nil {
			log.Printf("⚠️ Failed to delete permission override of %s: %v", id, derr)
		}
		s.save(s.All())
	}
	return err
}

// ByRole returns the users holding role
func (s *UserStore) ByRole(role domain.Role) []domain.User {
	return s.Filter(func(u domain.User) bool { return u.Role == role })
}

// AvailableRoles returns the roles that have a default matrix
func (s *UserStore) AvailableRoles() []domain.Role {
	out := make([]domain.Role, 0, len(s.roles))
	for _, role := range domain.ValidRoles {
		if _, ok := s.roles[role]; ok {
			out = append(out, role)
		}
	}
	return out
}

// RoleMatrix returns the default matrix of role
func (s *UserStore) RoleMatrix(role domain.Role) (domain.Matrix, bool) {
	m, ok := s.roles[role]
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

// CustomPermissions returns the override of userID, if one is set
func (s *UserStore) CustomPermissions(userID string) (domain.Matrix, bool) {
	s.ovMu.RLock()
	defer s.ovMu.RUnlock()
	m, ok := s.overrides[userID]
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

// SetCustomPermissions replaces the override of userID remotely, then locally
func (s *UserStore) SetCustomPermissions(ctx context.Context, userID string, matrix domain.Matrix) error {
	user, ok := s.GetByID(userID)
	if !ok {
		return fmt.Errorf("set permissions of %s: %w", userID, domain.ErrNotFound)
	}
	// key by the stored id; userID may point into a reused request buffer
	userID = user.ID
	matrix = matrix.Complete()
	if err := s.perms.ReplaceOverride(ctx, userID, matrix); err != nil {
		log.Printf("❌ Error saving permissions of %s: %v", userID, err)
		return fmt.Errorf("set permissions of %s: %w", userID, err)
	}

	s.ovMu.Lock()
	s.overrides[userID] = matrix
	s.ovVersion++
	s.ovMu.Unlock()

	s.save(s.All())
	return nil
}

// ClearCustomPermissions removes the override of userID so the role default
// applies again
func (s *UserStore) ClearCustomPermissions(ctx context.Context, userID string) error {
	if err := s.perms.DeleteOverride(ctx, userID); err != nil {
		log.Printf("❌ Error clearing permissions of %s: %v", userID, err)
		return fmt.Errorf("clear permissions of %s: %w", userID, err)
	}
	if s.dropOverride(userID) {
		s.save(s.All())
	}
	return nil
}

func (s *UserStore) dropOverride(userID string) bool {
	s.ovMu.Lock()
	defer s.ovMu.Unlock()
	if _, ok := s.overrides[userID]; !ok {
		return false
	}
	delete(s.overrides, userID)
	s.ovVersion++
	return true
}

func (s *UserStore) save(users []domain.User) {
	for i := range users {
		users[i].Password = ""
	}
	s.ovMu.RLock()
	overrides := make(map[string]domain.Matrix, len(s.overrides))
	for id, m := range s.overrides {
		overrides[id] = m.Clone()
	}
	s.ovMu.RUnlock()

	persist(s.snaps, ports.SnapshotUsers, usersSnapshot{Users: users, Overrides: overrides})
}

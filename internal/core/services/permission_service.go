package services

import (
	"context"
	"fmt"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

// CurrentUserSource exposes the signed-in user
type CurrentUserSource interface {
	CurrentUser() *domain.User
}

// MatrixSource exposes per-user overrides and role defaults
type MatrixSource interface {
	CustomPermissions(userID string) (domain.Matrix, bool)
	RoleMatrix(role domain.Role) (domain.Matrix, bool)
}

// PermissionResolver answers whether the current user may perform an action
// on a module. Resolution is local and fails closed.
type PermissionResolver struct {
	users    CurrentUserSource
	matrices MatrixSource
	remote   ports.PermissionGateway
}

// NewPermissionResolver creates a resolver. remote may be nil, in which case
// Check never leaves the process.
func NewPermissionResolver(users CurrentUserSource, matrices MatrixSource, remote ports.PermissionGateway) *PermissionResolver {
	return &PermissionResolver{
		users:    users,
		matrices: matrices,
		remote:   remote,
	}
}

// HasPermission resolves (module, action) for the current user without any
// network call
func (r *PermissionResolver) HasPermission(module, action string) bool {
	return r.Allows(r.users.CurrentUser(), module, action)
}

// Allows resolves (module, action) for user
func (r *PermissionResolver) Allows(user *domain.User, module, action string) bool {
	if user == nil {
		return false
	}
	m, ok := r.matrixFor(user)
	if !ok {
		return false
	}
	return m.Allows(module, action)
}

// Matrix returns the complete effective matrix of the current user. Every
// pair is present; an anonymous user gets an all-false matrix.
func (r *PermissionResolver) Matrix() domain.Matrix {
	user := r.users.CurrentUser()
	if user == nil {
		return domain.Matrix{}.Complete()
	}
	m, _ := r.matrixFor(user)
	return m.Complete()
}

// Check resolves locally when a matrix is known for the current user and
// asks the remote service otherwise
func (r *PermissionResolver) Check(ctx context.Context, module, action string) (bool, error) {
	user := r.users.CurrentUser()
	if user == nil {
		return false, nil
	}
	if m, ok := r.matrixFor(user); ok {
		return m.Allows(module, action), nil
	}
	if r.remote == nil {
		return false, nil
	}
	allowed, err := r.remote.HasPermission(ctx, user.ID, module, action)
	if err != nil {
		return false, fmt.Errorf("remote permission check: %w", err)
	}
	return allowed, nil
}

// matrixFor picks, in order: the administrator grant, the user's override,
// the role default
func (r *PermissionResolver) matrixFor(user *domain.User) (domain.Matrix, bool) {
	if user.Role == domain.RoleAdministrator {
		return domain.FullMatrix(), true
	}
	if m, ok := r.matrices.CustomPermissions(user.ID); ok {
		return m, true
	}
	return r.matrices.RoleMatrix(user.Role)
}

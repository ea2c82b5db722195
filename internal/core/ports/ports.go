// Package ports declares the contracts of the remote data service and of the
// local snapshot that the stores and services consume.
package ports

import (
	"context"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
)

// Table is the row-level CRUD surface of one remote table.
//
// SelectAll returns rows newest first. Insert and Update return the row as the
// remote service accepted it, including generated ids and timestamps. Update
// and Delete return domain.ErrNotFound when no row matches the key.
type Table[T any, K comparable] interface {
	SelectAll(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, record T) (T, error)
	Delete(ctx context.Context, id K) error
}

// AuthGateway is the authentication subsystem of the remote service
type AuthGateway interface {
	// SignIn returns domain.ErrInvalidCredentials or domain.ErrUserInactive
	// for expected failures; any other error is a transport failure.
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	SignOut(ctx context.Context, token string) error
	GetSession(ctx context.Context, token string) (*domain.Session, error)
}

// PermissionGateway is the authorization surface of the remote service
type PermissionGateway interface {
	HasPermission(ctx context.Context, userID, module, action string) (bool, error)
	ListOverrides(ctx context.Context) (map[string]domain.Matrix, error)
	ReplaceOverride(ctx context.Context, userID string, matrix domain.Matrix) error
	DeleteOverride(ctx context.Context, userID string) error
}

// SnapshotStore keeps named key-value snapshots for offline continuity
type SnapshotStore interface {
	// Load decodes the snapshot stored under key into dst and reports
	// whether one existed.
	Load(ctx context.Context, key string, dst any) (bool, error)
	Save(ctx context.Context, key string, v any) error
}

// Snapshot keys
const (
	SnapshotInventory     = "inventory"
	SnapshotNotifications = "notifications"
	SnapshotSettings      = "settings"
	SnapshotSuppliers     = "suppliers"
	SnapshotUsers         = "users"
	SnapshotSession       = "session"
)

package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/persistence/models"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
)

// PermissionRepository implements ports.PermissionGateway on the
// user_permissions table
type PermissionRepository struct {
	db    *gorm.DB
	roles map[domain.Role]domain.Matrix
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db, roles: domain.DefaultRoleMatrices()}
}

// HasPermission resolves one (module, action) pair for a user: administrators
// are allowed everything, then the user's override decides, then the role
// default. Unknown users are denied.
func (r *PermissionRepository) HasPermission(ctx context.Context, userID, module, action string) (bool, error) {
	db := r.db.WithContext(ctx)

	// 1. Load profile
	var profile models.Profile
	if err := db.Select("id", "role", "status").Where("id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, translate("select", profile.TableName(), err)
	}
	if domain.Role(profile.Role) == domain.RoleAdministrator {
		return true, nil
	}

	// 2. Override rows replace the role default entirely
	var rows []models.UserPermission
	if err := db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return false, translate("select", "user_permissions", err)
	}
	if len(rows) > 0 {
		return toMatrix(rows).Allows(module, action), nil
	}

	// 3. Role default
	return r.roles[domain.Role(profile.Role)].Allows(module, action), nil
}

// ListOverrides returns every user's override matrix
func (r *PermissionRepository) ListOverrides(ctx context.Context) (map[string]domain.Matrix, error) {
	var rows []models.UserPermission
	if err := r.db.WithContext(ctx).Order("user_id").Find(&rows).Error; err != nil {
		return nil, translate("select", "user_permissions", err)
	}

	byUser := make(map[string][]models.UserPermission)
	for _, row := range rows {
		byUser[row.UserID] = append(byUser[row.UserID], row)
	}
	out := make(map[string]domain.Matrix, len(byUser))
	for userID, perms := range byUser {
		out[userID] = toMatrix(perms)
	}
	return out, nil
}

// ReplaceOverride swaps a user's override rows for matrix in one transaction
func (r *PermissionRepository) ReplaceOverride(ctx context.Context, userID string, matrix domain.Matrix) error {
	rows := make([]models.UserPermission, 0, len(domain.Modules)*len(domain.Actions))
	for _, module := range domain.Modules {
		for _, action := range domain.Actions {
			rows = append(rows, models.UserPermission{
				UserID:  userID,
				Module:  module,
				Action:  action,
				Allowed: matrix.Allows(module, action),
			})
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserPermission{}).Error; err != nil {
			return translate("delete", "user_permissions", err)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return translate("insert", "user_permissions", err)
		}
		return nil
	})
}

// DeleteOverride removes a user's override. Removing a missing override is
// not an error.
func (r *PermissionRepository) DeleteOverride(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserPermission{}).Error
	if err != nil {
		return fmt.Errorf("delete override %s: %w", userID, err)
	}
	return nil
}

func toMatrix(rows []models.UserPermission) domain.Matrix {
	m := make(domain.Matrix)
	for _, row := range rows {
		if m[row.Module] == nil {
			m[row.Module] = make(map[string]bool)
		}
		m[row.Module][row.Action] = row.Allowed
	}
	return m.Complete()
}

package repositories

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/persistence/models"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/password"
)

// ProfileRepository is the users table. Passwords are hashed on the way in
// and never read back.
type ProfileRepository struct {
	*TableRepository[models.Profile, *models.Profile, domain.User, string]
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{
		TableRepository: NewTableRepository[models.Profile, *models.Profile, domain.User, string](
			db, models.ProfileFromDomain, "password_hash", "last_login",
		),
		db: db,
	}
}

// Insert creates a staff profile with a hashed password
func (r *ProfileRepository) Insert(ctx context.Context, user domain.User) (domain.User, error) {
	row, err := newProfileRow(user)
	if err != nil {
		return domain.User{}, err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return domain.User{}, translate("insert", row.TableName(), err)
	}
	return row.ToDomain(), nil
}

// Update writes the profile fields and, when a new password is supplied,
// replaces the stored hash
func (r *ProfileRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	if user.Password != "" && !password.ValidatePassword(user.Password) {
		return domain.User{}, fmt.Errorf("password must be at least %d characters: %w", password.MinLength, domain.ErrInvalidInput)
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	stored, err := r.TableRepository.Update(ctx, user)
	if err != nil || user.Password == "" {
		return stored, err
	}

	hash, err := password.Hash(user.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	err = r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", user.ID).
		Update("password_hash", hash).Error
	if err != nil {
		return domain.User{}, translate("update", "profiles", err)
	}
	return stored, nil
}

// GetByEmail gets a profile by email
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&profile).Error
	if err != nil {
		return nil, translate("select", profile.TableName(), err)
	}
	return &profile, nil
}

// ExistsByEmail checks if email exists
func (r *ProfileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

func newProfileRow(user domain.User) (*models.Profile, error) {
	if strings.TrimSpace(user.Name) == "" || strings.TrimSpace(user.Email) == "" {
		return nil, fmt.Errorf("name and email are required: %w", domain.ErrInvalidInput)
	}
	if !password.ValidatePassword(user.Password) {
		return nil, fmt.Errorf("password must be at least %d characters: %w", password.MinLength, domain.ErrInvalidInput)
	}
	if user.Role == "" {
		user.Role = domain.RolePharmacist
	}
	if !user.Role.IsValid() {
		return nil, fmt.Errorf("unknown role %q: %w", user.Role, domain.ErrInvalidInput)
	}
	if user.Status == "" {
		user.Status = domain.StatusActive
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	hash, err := password.Hash(user.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	row := models.ProfileFromDomain(user)
	row.PasswordHash = hash
	return row, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/persistence/models"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/jwt"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/pkg/password"
)

// AuthRepository implements ports.AuthGateway on the profiles and
// auth_sessions tables
type AuthRepository struct {
	db       *gorm.DB
	profiles *ProfileRepository
	secret   string
	lifetime time.Duration
}

// NewAuthRepository creates a new auth repository
func NewAuthRepository(db *gorm.DB, secret string, lifetime time.Duration) *AuthRepository {
	if lifetime <= 0 {
		lifetime = 12 * time.Hour
	}
	return &AuthRepository{
		db:       db,
		profiles: NewProfileRepository(db),
		secret:   secret,
		lifetime: lifetime,
	}
}

// SignIn verifies the credentials and opens a new session
func (r *AuthRepository) SignIn(ctx context.Context, email, pw string) (*domain.Session, error) {
	// 1. Find profile
	profile, err := r.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password
	if !password.Verify(pw, profile.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Check status
	user := profile.ToDomain()
	if !user.IsActive() {
		return nil, domain.ErrUserInactive
	}

	// 4. Issue token and store its hash
	sessionID := uuid.NewString()
	token, expiresAt, err := jwt.GenerateSessionToken(user.ID, user.Email, string(user.Role), sessionID, r.secret, r.lifetime)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}
	session := &models.AuthSession{
		ID:        sessionID,
		UserID:    user.ID,
		TokenHash: password.HashToken(token),
		ExpiresAt: expiresAt,
	}
	if err := r.db.WithContext(ctx).Omit("Profile").Create(session).Error; err != nil {
		return nil, translate("insert", session.TableName(), err)
	}

	// 5. Record last login
	now := time.Now()
	err = r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", user.ID).
		Update("last_login", now).Error
	if err != nil {
		return nil, translate("update", profile.TableName(), err)
	}
	user.LastLogin = &now

	return &domain.Session{Token: token, User: user, ExpiresAt: expiresAt}, nil
}

// SignOut revokes the session behind token. Unknown tokens are ignored.
func (r *AuthRepository) SignOut(ctx context.Context, token string) error {
	now := time.Now()
	err := r.db.WithContext(ctx).
		Model(&models.AuthSession{}).
		Where("token_hash = ?", password.HashToken(token)).
		Where("revoked_at IS NULL").
		Update("revoked_at", &now).Error
	if err != nil {
		return translate("update", "auth_sessions", err)
	}
	return nil
}

// GetSession resolves a token to its live session
func (r *AuthRepository) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	// 1. Validate signature and expiry
	claims, err := jwt.ValidateSessionToken(token, r.secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	// 2. Load session row
	var session models.AuthSession
	err = r.db.WithContext(ctx).
		Preload("Profile").
		Where("id = ? AND token_hash = ?", claims.ID, password.HashToken(token)).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, translate("select", session.TableName(), err)
	}
	if session.IsRevoked() {
		return nil, domain.ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	// 3. Profile must still be active
	user := session.Profile.ToDomain()
	if !user.IsActive() {
		return nil, domain.ErrUserInactive
	}

	return &domain.Session{Token: token, User: user, ExpiresAt: session.ExpiresAt}, nil
}

// DeleteExpired deletes expired and revoked sessions (cleanup job)
func (r *AuthRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", time.Now()).
		Delete(&models.AuthSession{})
	return result.RowsAffected, result.Error
}

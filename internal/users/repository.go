package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"artistly/internal/shared/apperrors"
)

// Directory exposes the role lookups other domains need. Roles come from the
// store, never from client input.
type Directory interface {
	ListAdminIDs(ctx context.Context) ([]uuid.UUID, error)
	GetRole(ctx context.Context, userID uuid.UUID) (Role, error)
	IsSuperAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

type directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) Directory {
	return &directory{db: db}
}

func (d *directory) ListAdminIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := d.db.WithContext(ctx).
		Model(&User{}).
		Where("role = ?", RoleAdmin).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperrors.Internal("failed to list admins", err)
	}
	return ids, nil
}

func (d *directory) GetRole(ctx context.Context, userID uuid.UUID) (Role, error) {
	var user User
	err := d.db.WithContext(ctx).
		Select("role", "is_super_admin").
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NotFound("user not found")
		}
		return "", apperrors.Internal("failed to load user role", err)
	}
	return user.Role, nil
}

func (d *directory) IsSuperAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	var user User
	err := d.db.WithContext(ctx).
		Select("role", "is_super_admin").
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.NotFound("user not found")
		}
		return false, apperrors.Internal("failed to load user", err)
	}
	return user.Role == RoleAdmin && user.IsSuperAdmin, nil
}

package collection

import (
	"context"

	"github.com/google/uuid"
	"github.com/openmeeple/meeplevault-backend/pkg/db/models"
	"gorm.io/gorm"
)

// listPageCap bounds every owner-scoped listing; there are no full-table scans.
const listPageCap = 1000

// Repository encapsulates collection entry persistence. Every query filters by
// owner_id so callers cannot reach another owner's rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a collection repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert persists a new entry. The unique index on (owner_id, bgg_id,
// is_wishlist) rejects duplicates atomically; the caller maps that violation
// to its conflict error.
func (r *Repository) Insert(ctx context.Context, entry *models.CollectionEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByOwner lists an owner's entries for one namespace (collection or
// wishlist), newest first, capped at listPageCap.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID, isWishlist bool) ([]models.CollectionEntry, error) {
	var entries []models.CollectionEntry
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_wishlist = ?", ownerID, isWishlist).
		Order("date_added DESC").
		Limit(listPageCap).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByOwnerAndID loads one entry scoped by owner.
func (r *Repository) FindByOwnerAndID(ctx context.Context, ownerID, entryID uuid.UUID) (*models.CollectionEntry, error) {
	var entry models.CollectionEntry
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, entryID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteByOwnerAndID removes the entry and reports whether a row matched.
func (r *Repository) DeleteByOwnerAndID(ctx context.Context, ownerID, entryID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, entryID).
		Delete(&models.CollectionEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateByOwnerAndID applies the pre-filtered column updates and reports
// whether a row matched. id and date_added never appear in updates.
func (r *Repository) UpdateByOwnerAndID(ctx context.Context, ownerID, entryID uuid.UUID, updates map[string]any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CollectionEntry{}).
		Where("owner_id = ? AND id = ?", ownerID, entryID).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByOwner returns the entry count for one namespace.
func (r *Repository) CountByOwner(ctx context.Context, ownerID uuid.UUID, isWishlist bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CollectionEntry{}).
		Where("owner_id = ? AND is_wishlist = ?", ownerID, isWishlist).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

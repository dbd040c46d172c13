package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/openmeeple/meeplevault-backend/pkg/db/types"
)

// CollectionEntry links an owner to a game snapshot. The unique index on
// (owner_id, bgg_id, is_wishlist) makes the dedup contract atomic: a second
// insert for the same triple fails at the database, not in a read-then-write
// race. Collection and wishlist rows are independent namespaces because
// is_wishlist participates in the key.
type CollectionEntry struct {
	ID               uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID          uuid.UUID            `gorm:"column:owner_id;type:uuid;not null;index:collection_entries_owner_idx;uniqueIndex:collection_entries_owner_game_key"`
	BGGID            string               `gorm:"column:bgg_id;type:text;not null;uniqueIndex:collection_entries_owner_game_key"`
	IsWishlist       bool                 `gorm:"column:is_wishlist;not null;default:false;uniqueIndex:collection_entries_owner_game_key"`
	Game             dbtypes.GameSnapshot `gorm:"column:game;type:jsonb;not null"`
	UserNotes        *string              `gorm:"column:user_notes"`
	CustomTags       dbtypes.StringArray  `gorm:"column:custom_tags;type:jsonb;not null"`
	WishlistPriority *int                 `gorm:"column:wishlist_priority"`
	DateAdded        time.Time            `gorm:"column:date_added;autoCreateTime"`
}

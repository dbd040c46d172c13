package collection

import (
	"time"

	"github.com/google/uuid"
	"github.com/openmeeple/meeplevault-backend/pkg/db/models"
	"github.com/openmeeple/meeplevault-backend/pkg/types"
)

// AddEntryRequest is the payload for adding a game to a collection or wishlist.
type AddEntryRequest struct {
	BGGID            string   `json:"bgg_id" validate:"required"`
	IsWishlist       bool     `json:"is_wishlist"`
	UserNotes        *string  `json:"user_notes,omitempty"`
	CustomTags       []string `json:"custom_tags,omitempty"`
	WishlistPriority *int     `json:"wishlist_priority,omitempty"`
}

// EntryDTO is the transport shape of a collection entry.
type EntryDTO struct {
	ID               uuid.UUID  `json:"id"`
	OwnerID          uuid.UUID  `json:"owner_id"`
	Game             types.Game `json:"game"`
	UserNotes        *string    `json:"user_notes,omitempty"`
	CustomTags       []string   `json:"custom_tags"`
	IsWishlist       bool       `json:"is_wishlist"`
	WishlistPriority *int       `json:"wishlist_priority,omitempty"`
	DateAdded        time.Time  `json:"date_added"`
}

func FromEntryModel(e *models.CollectionEntry) *EntryDTO {
	if e == nil {
		return nil
	}

	tags := []string(e.CustomTags)
	if tags == nil {
		tags = []string{}
	}

	return &EntryDTO{
		ID:               e.ID,
		OwnerID:          e.OwnerID,
		Game:             e.Game.Game,
		UserNotes:        e.UserNotes,
		CustomTags:       append([]string(nil), tags...),
		IsWishlist:       e.IsWishlist,
		WishlistPriority: e.WishlistPriority,
		DateAdded:        e.DateAdded,
	}
}

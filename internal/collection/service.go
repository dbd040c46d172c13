package collection

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/openmeeple/meeplevault-backend/pkg/db"
	"github.com/openmeeple/meeplevault-backend/pkg/db/models"
	dbtypes "github.com/openmeeple/meeplevault-backend/pkg/db/types"
	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
	"github.com/openmeeple/meeplevault-backend/pkg/types"
)

// AnonymousOwnerID is the sentinel owner for unauthenticated callers. All
// anonymous mutations share this single bucket; the tradeoff is documented
// rather than hidden, and public profile gating never applies to it.
var AnonymousOwnerID = uuid.Nil

const duplicateEntryMessage = "entry already exists for this game"

// Service exposes business rules for collection and wishlist management.
type Service interface {
	Add(ctx context.Context, ownerID uuid.UUID, req AddEntryRequest) (*EntryDTO, error)
	List(ctx context.Context, ownerID uuid.UUID, isWishlist bool) ([]EntryDTO, error)
	Remove(ctx context.Context, ownerID, entryID uuid.UUID) error
	Update(ctx context.Context, ownerID, entryID uuid.UUID, patch map[string]any) (*EntryDTO, error)
}

type catalog interface {
	GameDetails(ctx context.Context, bggID string) (*types.Game, error)
}

type entryRepository interface {
	Insert(ctx context.Context, entry *models.CollectionEntry) error
	FindByOwner(ctx context.Context, ownerID uuid.UUID, isWishlist bool) ([]models.CollectionEntry, error)
	FindByOwnerAndID(ctx context.Context, ownerID, entryID uuid.UUID) (*models.CollectionEntry, error)
	DeleteByOwnerAndID(ctx context.Context, ownerID, entryID uuid.UUID) (bool, error)
	UpdateByOwnerAndID(ctx context.Context, ownerID, entryID uuid.UUID, updates map[string]any) (bool, error)
}

// ServiceParams groups dependencies for the collection service.
type ServiceParams struct {
	EntryRepo entryRepository
	Catalog   catalog
}

type service struct {
	entries entryRepository
	catalog catalog
}

// NewService builds a collection service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.EntryRepo == nil {
		return nil, fmt.Errorf("entry repository is required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	return &service{
		entries: params.EntryRepo,
		catalog: params.Catalog,
	}, nil
}

// Add snapshots the game from the catalog and inserts the entry. Duplicate
// detection is atomic: the unique key on (owner_id, bgg_id, is_wishlist)
// rejects a concurrent second insert at the database.
func (s *service) Add(ctx context.Context, ownerID uuid.UUID, req AddEntryRequest) (*EntryDTO, error) {
	bggID := strings.TrimSpace(req.BGGID)
	if bggID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bgg_id is required")
	}

	game, err := s.catalog.GameDetails(ctx, bggID)
	if err != nil {
		return nil, err
	}

	tags := req.CustomTags
	if tags == nil {
		tags = []string{}
	}

	entry := &models.CollectionEntry{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		BGGID:            game.BGGID,
		IsWishlist:       req.IsWishlist,
		Game:             dbtypes.GameSnapshot{Game: *game},
		UserNotes:        req.UserNotes,
		CustomTags:       dbtypes.StringArray(tags),
		WishlistPriority: req.WishlistPriority,
	}

	if err := s.entries.Insert(ctx, entry); err != nil {
		if db.IsUniqueViolation(err, "collection_entries_owner_game_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, duplicateEntryMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert entry")
	}

	return FromEntryModel(entry), nil
}

// List returns the owner's entries for one namespace, newest first.
func (s *service) List(ctx context.Context, ownerID uuid.UUID, isWishlist bool) ([]EntryDTO, error) {
	entries, err := s.entries.FindByOwner(ctx, ownerID, isWishlist)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list entries")
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for i := range entries {
		dtos = append(dtos, *FromEntryModel(&entries[i]))
	}
	return dtos, nil
}

// Remove deletes the entry scoped by owner. A miss is not-found whether the
// entry never existed or belongs to someone else.
func (s *service) Remove(ctx context.Context, ownerID, entryID uuid.UUID) error {
	deleted, err := s.entries.DeleteByOwnerAndID(ctx, ownerID, entryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete entry")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "entry not found")
	}
	return nil
}

// Update applies a partial patch restricted to the mutable field allow-list.
// Unknown fields are dropped silently; a patch with nothing left after
// filtering is a validation error. id and date_added are immutable.
func (s *service) Update(ctx context.Context, ownerID, entryID uuid.UUID, patch map[string]any) (*EntryDTO, error) {
	updates, err := filterPatch(patch)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no valid fields to update")
	}

	matched, err := s.entries.UpdateByOwnerAndID(ctx, ownerID, entryID, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update entry")
	}
	if !matched {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "entry not found")
	}

	entry, err := s.entries.FindByOwnerAndID(ctx, ownerID, entryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload entry")
	}
	return FromEntryModel(entry), nil
}

func filterPatch(patch map[string]any) (map[string]any, error) {
	updates := map[string]any{}
	for field, value := range patch {
		switch field {
		case "user_notes":
			if value == nil {
				updates["user_notes"] = nil
				continue
			}
			notes, ok := value.(string)
			if !ok {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "user_notes must be a string").
					WithDetails(map[string]any{"field": "user_notes"})
			}
			updates["user_notes"] = notes
		case "custom_tags":
			tags, err := coerceStringSlice(value)
			if err != nil {
				return nil, err
			}
			updates["custom_tags"] = dbtypes.StringArray(tags)
		}
	}
	return updates, nil
}

func coerceStringSlice(value any) ([]string, error) {
	invalid := pkgerrors.New(pkgerrors.CodeValidation, "custom_tags must be a list of strings").
		WithDetails(map[string]any{"field": "custom_tags"})

	if value == nil {
		return []string{}, nil
	}
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		tags := make([]string, 0, len(v))
		for _, raw := range v {
			tag, ok := raw.(string)
			if !ok {
				return nil, invalid
			}
			tags = append(tags, tag)
		}
		return tags, nil
	default:
		return nil, invalid
	}
}

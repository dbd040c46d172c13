package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/openmeeple/meeplevault-backend/internal/collection"
	"github.com/openmeeple/meeplevault-backend/pkg/db/models"
	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
	"gorm.io/gorm"
)

// PublicProfileDTO is the outward-facing view of an account that opted in to
// public visibility.
type PublicProfileDTO struct {
	Username        string    `json:"username"`
	MemberSince     time.Time `json:"member_since"`
	CollectionCount int64     `json:"collection_count"`
	WishlistCount   int64     `json:"wishlist_count"`
}

// Service exposes the public profile surface.
type Service interface {
	PublicProfile(ctx context.Context, username string) (*PublicProfileDTO, error)
	PublicCollection(ctx context.Context, username string, isWishlist bool) ([]collection.EntryDTO, error)
}

type userFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type entryLister interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID, isWishlist bool) ([]models.CollectionEntry, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID, isWishlist bool) (int64, error)
}

type service struct {
	users   userFinder
	entries entryLister
}

// NewService builds the public profile service.
func NewService(users userFinder, entries entryLister) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if entries == nil {
		return nil, fmt.Errorf("entry repository is required")
	}
	return &service{users: users, entries: entries}, nil
}

// PublicProfile returns the profile for a public account. A missing user is
// not-found; an existing private account is forbidden, which intentionally
// reveals that the username is taken.
func (s *service) PublicProfile(ctx context.Context, username string) (*PublicProfileDTO, error) {
	user, err := s.resolvePublicUser(ctx, username)
	if err != nil {
		return nil, err
	}

	collectionCount, err := s.entries.CountByOwner(ctx, user.ID, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count collection")
	}
	wishlistCount, err := s.entries.CountByOwner(ctx, user.ID, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count wishlist")
	}

	return &PublicProfileDTO{
		Username:        user.Username,
		MemberSince:     user.CreatedAt,
		CollectionCount: collectionCount,
		WishlistCount:   wishlistCount,
	}, nil
}

// PublicCollection lists a public account's entries under the same visibility rule.
func (s *service) PublicCollection(ctx context.Context, username string, isWishlist bool) ([]collection.EntryDTO, error) {
	user, err := s.resolvePublicUser(ctx, username)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.FindByOwner(ctx, user.ID, isWishlist)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list entries")
	}

	dtos := make([]collection.EntryDTO, 0, len(entries))
	for i := range entries {
		dtos = append(dtos, *collection.FromEntryModel(&entries[i]))
	}
	return dtos, nil
}

func (s *service) resolvePublicUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	if !user.IsPublic {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "profile is private")
	}
	return user, nil
}

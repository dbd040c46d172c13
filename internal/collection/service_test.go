package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/openmeeple/meeplevault-backend/pkg/db/models"
	dbtypes "github.com/openmeeple/meeplevault-backend/pkg/db/types"
	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
	"github.com/openmeeple/meeplevault-backend/pkg/types"
)

type stubCatalog struct {
	game *types.Game
	err  error
}

func (s *stubCatalog) GameDetails(ctx context.Context, bggID string) (*types.Game, error) {
	if s.err != nil {
		return nil, s.err
	}
	game := *s.game
	game.BGGID = bggID
	return &game, nil
}

type stubEntryRepo struct {
	inserted  *models.CollectionEntry
	insertErr error

	entries []models.CollectionEntry

	updated       map[string]any
	updateMatched bool
	deleteMatched bool
}

func (s *stubEntryRepo) Insert(ctx context.Context, entry *models.CollectionEntry) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = entry
	return nil
}

func (s *stubEntryRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID, isWishlist bool) ([]models.CollectionEntry, error) {
	return s.entries, nil
}

func (s *stubEntryRepo) FindByOwnerAndID(ctx context.Context, ownerID, entryID uuid.UUID) (*models.CollectionEntry, error) {
	if len(s.entries) == 0 {
		return nil, errors.New("record not found")
	}
	return &s.entries[0], nil
}

func (s *stubEntryRepo) DeleteByOwnerAndID(ctx context.Context, ownerID, entryID uuid.UUID) (bool, error) {
	return s.deleteMatched, nil
}

func (s *stubEntryRepo) UpdateByOwnerAndID(ctx context.Context, ownerID, entryID uuid.UUID, updates map[string]any) (bool, error) {
	s.updated = updates
	return s.updateMatched, nil
}

func buildTestService(t *testing.T, repo *stubEntryRepo, cat *stubCatalog) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{EntryRepo: repo, Catalog: cat})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestServiceAddSnapshotsGame(t *testing.T) {
	repo := &stubEntryRepo{}
	cat := &stubCatalog{game: &types.Game{ID: uuid.NewString(), Name: "Catan"}}
	svc := buildTestService(t, repo, cat)
	owner := uuid.New()
	priority := 3

	entry, err := svc.Add(context.Background(), owner, AddEntryRequest{
		BGGID:            "13",
		IsWishlist:       true,
		WishlistPriority: &priority,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if repo.inserted == nil {
		t.Fatalf("expected insert to be called")
	}
	if repo.inserted.BGGID != "13" || !repo.inserted.IsWishlist {
		t.Fatalf("unexpected inserted entry: %+v", repo.inserted)
	}
	if repo.inserted.Game.Name != "Catan" {
		t.Fatalf("expected snapshot to carry game name, got %q", repo.inserted.Game.Name)
	}
	if entry.WishlistPriority == nil || *entry.WishlistPriority != 3 {
		t.Fatalf("expected priority 3, got %v", entry.WishlistPriority)
	}
	if entry.CustomTags == nil || len(entry.CustomTags) != 0 {
		t.Fatalf("expected empty tags, got %v", entry.CustomTags)
	}
}

func TestServiceAddRequiresBGGID(t *testing.T) {
	svc := buildTestService(t, &stubEntryRepo{}, &stubCatalog{game: &types.Game{Name: "Catan"}})

	_, err := svc.Add(context.Background(), uuid.New(), AddEntryRequest{BGGID: "  "})
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceAddDuplicateIsConflict(t *testing.T) {
	repo := &stubEntryRepo{
		insertErr: errors.New("UNIQUE constraint failed: collection_entries.owner_id, collection_entries.bgg_id, collection_entries.is_wishlist"),
	}
	svc := buildTestService(t, repo, &stubCatalog{game: &types.Game{Name: "Catan"}})

	_, err := svc.Add(context.Background(), uuid.New(), AddEntryRequest{BGGID: "13"})
	if !pkgerrors.Is(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestServiceAddPropagatesCatalogNotFound(t *testing.T) {
	svc := buildTestService(t, &stubEntryRepo{}, &stubCatalog{
		err: pkgerrors.New(pkgerrors.CodeNotFound, "game not found"),
	})

	_, err := svc.Add(context.Background(), uuid.New(), AddEntryRequest{BGGID: "999999"})
	if !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceUpdateDropsUnknownFields(t *testing.T) {
	repo := &stubEntryRepo{
		updateMatched: true,
		entries: []models.CollectionEntry{{
			ID:         uuid.New(),
			CustomTags: dbtypes.StringArray{},
		}},
	}
	svc := buildTestService(t, repo, &stubCatalog{game: &types.Game{Name: "Catan"}})

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), map[string]any{
		"user_notes": "great with 4 players",
		"date_added": "2020-01-01",
		"id":         uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(repo.updated) != 1 {
		t.Fatalf("expected only user_notes to survive filtering, got %v", repo.updated)
	}
	if repo.updated["user_notes"] != "great with 4 players" {
		t.Fatalf("unexpected update payload: %v", repo.updated)
	}
}

func TestServiceUpdateEmptyFilteredPatchIsValidationError(t *testing.T) {
	svc := buildTestService(t, &stubEntryRepo{}, &stubCatalog{game: &types.Game{Name: "Catan"}})

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), map[string]any{
		"not_allowed": "x",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "no valid fields to update" {
		t.Fatalf("unexpected message: %q", typed.Message())
	}
}

func TestServiceUpdateCoercesTags(t *testing.T) {
	repo := &stubEntryRepo{
		updateMatched: true,
		entries:       []models.CollectionEntry{{ID: uuid.New(), CustomTags: dbtypes.StringArray{}}},
	}
	svc := buildTestService(t, repo, &stubCatalog{game: &types.Game{Name: "Catan"}})

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), map[string]any{
		"custom_tags": []any{"strategy", "classic"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	tags, ok := repo.updated["custom_tags"].(dbtypes.StringArray)
	if !ok || len(tags) != 2 {
		t.Fatalf("expected coerced tags, got %v", repo.updated["custom_tags"])
	}
}

func TestServiceUpdateRejectsNonStringTags(t *testing.T) {
	svc := buildTestService(t, &stubEntryRepo{}, &stubCatalog{game: &types.Game{Name: "Catan"}})

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), map[string]any{
		"custom_tags": []any{"ok", 7},
	})
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceUpdateMissIsNotFound(t *testing.T) {
	svc := buildTestService(t, &stubEntryRepo{updateMatched: false}, &stubCatalog{game: &types.Game{Name: "Catan"}})

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), map[string]any{
		"user_notes": "x",
	})
	if !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceRemoveMissIsNotFound(t *testing.T) {
	svc := buildTestService(t, &stubEntryRepo{deleteMatched: false}, &stubCatalog{game: &types.Game{Name: "Catan"}})

	err := svc.Remove(context.Background(), uuid.New(), uuid.New())
	if !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

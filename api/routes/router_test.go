package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openmeeple/meeplevault-backend/internal/auth"
	"github.com/openmeeple/meeplevault-backend/internal/collection"
	"github.com/openmeeple/meeplevault-backend/internal/users"
	pkgAuth "github.com/openmeeple/meeplevault-backend/pkg/auth"
	"github.com/openmeeple/meeplevault-backend/pkg/auth/session"
	"github.com/openmeeple/meeplevault-backend/pkg/config"
	"github.com/openmeeple/meeplevault-backend/pkg/db/models"
	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
	"github.com/openmeeple/meeplevault-backend/pkg/logger"
	"github.com/openmeeple/meeplevault-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct {
	user *models.User
}

func (s stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.TokenResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.TokenResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

func (s stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (s stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.TokenResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

func (s stubAuthService) Profile(ctx context.Context, userID uuid.UUID) (*auth.ProfileResponse, error) {
	return &auth.ProfileResponse{User: &users.UserDTO{ID: userID, Username: "alice"}}, nil
}

func (s stubAuthService) ResolveUser(ctx context.Context, claims *pkgAuth.AccessTokenClaims) (*models.User, error) {
	if s.user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return s.user, nil
}

type stubCatalogService struct{}

func (stubCatalogService) Search(ctx context.Context, query string) ([]types.GameSummary, error) {
	return []types.GameSummary{{BGGID: "13", Name: "Catan"}}, nil
}

func (stubCatalogService) GameDetails(ctx context.Context, bggID string) (*types.Game, error) {
	return &types.Game{ID: uuid.NewString(), BGGID: bggID, Name: "Catan"}, nil
}

type stubCollectionService struct{}

func (stubCollectionService) Add(ctx context.Context, ownerID uuid.UUID, req collection.AddEntryRequest) (*collection.EntryDTO, error) {
	return &collection.EntryDTO{ID: uuid.New(), OwnerID: ownerID, CustomTags: []string{}}, nil
}

func (stubCollectionService) List(ctx context.Context, ownerID uuid.UUID, isWishlist bool) ([]collection.EntryDTO, error) {
	return []collection.EntryDTO{}, nil
}

func (stubCollectionService) Remove(ctx context.Context, ownerID, entryID uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "entry not found")
}

func (stubCollectionService) Update(ctx context.Context, ownerID, entryID uuid.UUID, patch map[string]any) (*collection.EntryDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "entry not found")
}

type stubUsersService struct{}

func (stubUsersService) PublicProfile(ctx context.Context, username string) (*users.PublicProfileDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
}

func (stubUsersService) PublicCollection(ctx context.Context, username string, isWishlist bool) ([]collection.EntryDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "router-test-secret",
			Issuer:                 "meeplevault",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config, authSvc auth.Service) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(RouterParams{
		Config:            cfg,
		Logger:            logg,
		DB:                stubPinger{},
		Redis:             stubPinger{},
		SessionChecker:    stubSessionChecker{},
		AuthService:       authSvc,
		CatalogService:    stubCatalogService{},
		CollectionService: stubCollectionService{},
		UsersService:      stubUsersService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, user *models.User) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		JTI:      session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig(), stubAuthService{})
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	router := newTestRouter(testConfig(), stubAuthService{})
	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without query got %d", resp.Code)
	}
}

func TestSearchReturnsSummaries(t *testing.T) {
	router := newTestRouter(testConfig(), stubAuthService{})
	req := httptest.NewRequest(http.MethodGet, "/api/search?q=catan", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for search got %d", resp.Code)
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	items, ok := body.Data.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one summary, got %v", body.Data)
	}
}

func TestProfileRejectsMissingToken(t *testing.T) {
	router := newTestRouter(testConfig(), stubAuthService{})
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestProfileSucceedsWithToken(t *testing.T) {
	cfg := testConfig()
	user := &models.User{ID: uuid.New(), Username: "alice", IsActive: true}
	router := newTestRouter(cfg, stubAuthService{user: user})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for profile got %d", resp.Code)
	}
}

func TestCollectionAllowsAnonymous(t *testing.T) {
	router := newTestRouter(testConfig(), stubAuthService{})
	req := httptest.NewRequest(http.MethodGet, "/api/collection", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected anonymous collection list to pass got %d", resp.Code)
	}
}

func TestPublicProfileUnknownUser(t *testing.T) {
	router := newTestRouter(testConfig(), stubAuthService{})
	req := httptest.NewRequest(http.MethodGet, "/api/public/ghost", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown public profile got %d", resp.Code)
	}
}

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmeeple/meeplevault-backend/internal/users"
	pkgAuth "github.com/openmeeple/meeplevault-backend/pkg/auth"
	"github.com/openmeeple/meeplevault-backend/pkg/config"
	"github.com/openmeeple/meeplevault-backend/pkg/db/models"
	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
	"github.com/openmeeple/meeplevault-backend/pkg/security"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "meeplevault",
	ExpirationMinutes: 30,
}

type stubUserRepo struct {
	byUsername map[string]*models.User
	byEmail    map[string]*models.User
	byID       map[uuid.UUID]*models.User

	createErr error
	created   *models.User
}

func newStubUserRepo(seed ...*models.User) *stubUserRepo {
	repo := &stubUserRepo{
		byUsername: map[string]*models.User{},
		byEmail:    map[string]*models.User{},
		byID:       map[uuid.UUID]*models.User{},
	}
	for _, user := range seed {
		repo.index(user)
	}
	return repo
}

func (s *stubUserRepo) index(user *models.User) {
	s.byUsername[user.Username] = user
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := dto.ToModel()
	s.created = user
	s.index(user)
	return user, nil
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := s.byUsername[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

type stubSessionManager struct {
	refreshToken string
	rotateErr    error
	revoked      []string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return "rotated-access-id", "rotated-refresh-token", nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

type stubCounter struct {
	collection int64
	wishlist   int64
}

func (s stubCounter) CountByOwner(ctx context.Context, ownerID uuid.UUID, isWishlist bool) (int64, error) {
	if isWishlist {
		return s.wishlist, nil
	}
	return s.collection, nil
}

func newTestService(t *testing.T, repo *stubUserRepo) (Service, *stubSessionManager) {
	t.Helper()
	sessions := &stubSessionManager{refreshToken: "refresh-token"}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		CollectionRepo: stubCounter{collection: 2, wishlist: 1},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig,
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, sessions
}

func seededUser(t *testing.T, username, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
}

func TestRegisterIssuesParseableToken(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(t, repo)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if repo.created == nil {
		t.Fatalf("expected user to be created")
	}
	if repo.created.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", repo.created.Email)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Username() != "alice" {
		t.Fatalf("expected subject alice, got %q", claims.Username())
	}
	if claims.UserID != repo.created.ID {
		t.Fatalf("expected user id claim to match created user")
	}
	if resp.RefreshToken == "" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected token response: %+v", resp)
	}
}

func TestRegisterDuplicateUsernameIsConflict(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = errors.New(`duplicate key value violates unique constraint "idx_users_username"`)
	svc, _ := newTestService(t, repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if typed.Message() != "username already taken" {
		t.Fatalf("unexpected message: %q", typed.Message())
	}
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	user := seededUser(t, "alice", "alice@example.com", "hunter2hunter2")
	svc, _ := newTestService(t, newStubUserRepo(user))

	for _, identifier := range []string{"alice", "alice@example.com"} {
		resp, err := svc.Login(context.Background(), LoginRequest{
			Identifier: identifier,
			Password:   "hunter2hunter2",
		})
		if err != nil {
			t.Fatalf("login via %q: %v", identifier, err)
		}
		if resp.User == nil || resp.User.Username != "alice" {
			t.Fatalf("unexpected login response for %q: %+v", identifier, resp)
		}
	}
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	user := seededUser(t, "alice", "alice@example.com", "hunter2hunter2")
	svc, _ := newTestService(t, newStubUserRepo(user))

	_, err := svc.Login(context.Background(), LoginRequest{
		Identifier: "alice",
		Password:   "wrong",
	})
	if !pkgerrors.Is(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownUserIsUnauthorized(t *testing.T) {
	svc, _ := newTestService(t, newStubUserRepo())

	_, err := svc.Login(context.Background(), LoginRequest{
		Identifier: "ghost",
		Password:   "whatever",
	})
	if !pkgerrors.Is(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginInactiveUserIsUnauthorized(t *testing.T) {
	user := seededUser(t, "alice", "alice@example.com", "hunter2hunter2")
	user.IsActive = false
	svc, _ := newTestService(t, newStubUserRepo(user))

	_, err := svc.Login(context.Background(), LoginRequest{
		Identifier: "alice",
		Password:   "hunter2hunter2",
	})
	if !pkgerrors.Is(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, sessions := newTestService(t, newStubUserRepo())

	if err := svc.Logout(context.Background(), "access-id"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-id" {
		t.Fatalf("expected access-id to be revoked, got %v", sessions.revoked)
	}
}

func TestResolveUserRejectsDeletedAccount(t *testing.T) {
	svc, _ := newTestService(t, newStubUserRepo())

	claims := &pkgAuth.AccessTokenClaims{UserID: uuid.New()}
	_, err := svc.ResolveUser(context.Background(), claims)
	if !pkgerrors.Is(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for unknown user, got %v", err)
	}
}

func TestResolveUserRejectsInactiveAccount(t *testing.T) {
	user := seededUser(t, "alice", "alice@example.com", "hunter2hunter2")
	user.IsActive = false
	svc, _ := newTestService(t, newStubUserRepo(user))

	_, err := svc.ResolveUser(context.Background(), &pkgAuth.AccessTokenClaims{UserID: user.ID})
	if !pkgerrors.Is(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for inactive user, got %v", err)
	}
}

func TestProfileIncludesCounts(t *testing.T) {
	user := seededUser(t, "alice", "alice@example.com", "hunter2hunter2")
	svc, _ := newTestService(t, newStubUserRepo(user))

	profile, err := svc.Profile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.User == nil || profile.User.Username != "alice" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if profile.CollectionCount != 2 || profile.WishlistCount != 1 {
		t.Fatalf("unexpected counts: %d/%d", profile.CollectionCount, profile.WishlistCount)
	}
}

func TestRefreshInvalidAccessTokenIsUnauthorized(t *testing.T) {
	svc, _ := newTestService(t, newStubUserRepo())

	_, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  "not-a-jwt",
		RefreshToken: "refresh",
	})
	if !pkgerrors.Is(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

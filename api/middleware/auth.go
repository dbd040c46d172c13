package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/openmeeple/meeplevault-backend/api/responses"
	pkgAuth "github.com/openmeeple/meeplevault-backend/pkg/auth"
	"github.com/openmeeple/meeplevault-backend/pkg/auth/session"
	"github.com/openmeeple/meeplevault-backend/pkg/config"
	"github.com/openmeeple/meeplevault-backend/pkg/db/models"
	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
	"github.com/openmeeple/meeplevault-backend/pkg/logger"
)

// UserResolver maps validated claims to a live account. A token whose subject
// no longer exists must be rejected, not trusted.
type UserResolver interface {
	ResolveUser(ctx context.Context, claims *pkgAuth.AccessTokenClaims) (*models.User, error)
}

// Auth validates a bearer token, resolves the account, and seeds the request
// context with the identity.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, resolver UserResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := resolveIdentity(r, cfg, verifier, resolver, logg)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves identity when a valid credential is present and falls
// through as anonymous on any failure. Missing, expired, and malformed tokens
// all degrade to the shared anonymous owner instead of a 401.
func OptionalAuth(cfg config.JWTConfig, verifier session.AccessSessionChecker, resolver UserResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := resolveIdentity(r, cfg, verifier, resolver, logg)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveIdentity(
	r *http.Request,
	cfg config.JWTConfig,
	verifier session.AccessSessionChecker,
	resolver UserResolver,
	logg *logger.Logger,
) (context.Context, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	token := raw
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}

	if claims.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}

	if verifier != nil {
		ok, err := verifier.HasSession(r.Context(), claims.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable")
		}
	}

	user := (*models.User)(nil)
	if resolver != nil {
		user, err = resolver.ResolveUser(r.Context(), claims)
		if err != nil {
			return nil, err
		}
	}

	userID := claims.UserID.String()
	username := claims.Username()
	if user != nil {
		userID = user.ID.String()
		username = user.Username
	}

	ctx := WithUserID(r.Context(), userID)
	ctx = WithUsername(ctx, username)
	ctx = WithAccessID(ctx, claims.ID)

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"user_id":  userID,
			"username": username,
		})
	}

	return ctx, nil
}

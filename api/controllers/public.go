package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/openmeeple/meeplevault-backend/api/responses"
	"github.com/openmeeple/meeplevault-backend/api/validators"
	"github.com/openmeeple/meeplevault-backend/internal/users"
	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
	"github.com/openmeeple/meeplevault-backend/pkg/logger"
)

// PublicProfile returns a public account's profile.
func PublicProfile(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		username, err := usernameParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		profile, err := svc.PublicProfile(ctx, username)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// PublicCollection lists a public account's collection or wishlist.
func PublicCollection(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		username, err := usernameParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		isWishlist, err := validators.ParseQueryBool(r, "is_wishlist", false)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entries, err := svc.PublicCollection(ctx, username, isWishlist)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

func usernameParam(r *http.Request) (string, error) {
	username := strings.TrimSpace(chi.URLParam(r, "username"))
	if username == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	return username, nil
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openmeeple/meeplevault-backend/api/middleware"
	"github.com/openmeeple/meeplevault-backend/api/responses"
	"github.com/openmeeple/meeplevault-backend/api/validators"
	"github.com/openmeeple/meeplevault-backend/internal/collection"
	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
	"github.com/openmeeple/meeplevault-backend/pkg/logger"
)

// CollectionAdd adds a game to the resolved owner's collection or wishlist.
func CollectionAdd(svc collection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		var body collection.AddEntryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entry, err := svc.Add(ctx, middleware.OwnerFromContext(ctx), body)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// CollectionList lists the resolved owner's entries for one namespace.
func CollectionList(svc collection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		isWishlist, err := validators.ParseQueryBool(r, "is_wishlist", false)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entries, err := svc.List(ctx, middleware.OwnerFromContext(ctx), isWishlist)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

// CollectionUpdate applies a partial patch to one entry.
func CollectionUpdate(svc collection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		entryID, err := entryIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		patch, err := validators.DecodeJSONPatch(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entry, err := svc.Update(ctx, middleware.OwnerFromContext(ctx), entryID, patch)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

// CollectionRemove deletes one entry owned by the resolved caller.
func CollectionRemove(svc collection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collection service unavailable"))
			return
		}

		entryID, err := entryIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Remove(ctx, middleware.OwnerFromContext(ctx), entryID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"removed": true})
	}
}

func entryIDParam(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "entryID"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "entry id is required")
	}
	entryID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid entry id")
	}
	return entryID, nil
}

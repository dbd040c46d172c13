package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/openmeeple/meeplevault-backend/api/responses"
	"github.com/openmeeple/meeplevault-backend/api/validators"
	"github.com/openmeeple/meeplevault-backend/internal/bgg"
	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
	"github.com/openmeeple/meeplevault-backend/pkg/logger"
)

const minSearchQueryLength = 2

// CatalogSearch proxies a name search to the upstream catalog.
func CatalogSearch(svc bgg.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query, err := validators.RequireQueryString(r, "q", minSearchQueryLength)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		results, err := svc.Search(ctx, query)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, results)
	}
}

// CatalogGameDetails returns the normalized record for one game.
func CatalogGameDetails(svc bgg.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		bggID := strings.TrimSpace(chi.URLParam(r, "bggID"))
		if bggID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "game id is required"))
			return
		}

		game, err := svc.GameDetails(ctx, bggID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, game)
	}
}

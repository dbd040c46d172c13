package bgg

import (
	"context"

	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
	"github.com/openmeeple/meeplevault-backend/pkg/logger"
	"github.com/openmeeple/meeplevault-backend/pkg/types"
)

// Service exposes the normalized catalog operations.
type Service interface {
	Search(ctx context.Context, query string) ([]types.GameSummary, error)
	GameDetails(ctx context.Context, bggID string) (*types.Game, error)
}

// fetcher is the raw-payload dependency; *Client satisfies it in production.
type fetcher interface {
	Search(ctx context.Context, query string) ([]byte, error)
	Thing(ctx context.Context, bggID string) ([]byte, error)
}

type service struct {
	fetcher fetcher
	log     *logger.Logger
}

func NewService(f fetcher, log *logger.Logger) Service {
	return &service{fetcher: f, log: log}
}

// Search returns capped summaries for a name query. A payload the decoder
// cannot make sense of degrades to an empty result set; only transport-level
// failures propagate.
func (s *service) Search(ctx context.Context, query string) ([]types.GameSummary, error) {
	raw, err := s.fetcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	items, err := DecodeItems(raw)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeUpstream) {
			s.log.Warn(s.log.WithField(ctx, "query", query), "unusable search payload, returning empty results")
			return []types.GameSummary{}, nil
		}
		return nil, err
	}

	return Summarize(items), nil
}

// GameDetails returns the canonical record for one game. Upstream answering
// with an empty or malformed document maps to not-found, since upstream uses
// an empty <items> response for unknown identifiers.
func (s *service) GameDetails(ctx context.Context, bggID string) (*types.Game, error) {
	raw, err := s.fetcher.Thing(ctx, bggID)
	if err != nil {
		return nil, err
	}

	item, err := DecodeItem(raw)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeUpstream) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "game not found")
		}
		return nil, err
	}

	game, err := Normalize(*item, bggID)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeUpstream) {
			s.log.Error(s.log.WithField(ctx, "bgg_id", bggID), "detail payload failed normalization", err)
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "game not found")
		}
		return nil, err
	}

	return game, nil
}

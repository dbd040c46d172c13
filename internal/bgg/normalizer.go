package bgg

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
	"github.com/openmeeple/meeplevault-backend/pkg/types"
)

const (
	// searchResultCap bounds how many raw items a search turns into summaries.
	searchResultCap = 10

	unknownName = "Unknown"

	primaryNameType = "primary"
)

// Summarize maps raw search items into GameSummary projections, capped at
// searchResultCap. Summaries are best-effort: a missing name falls back to
// "Unknown" instead of dropping the item.
func Summarize(items []Item) []types.GameSummary {
	capped := items
	if len(capped) > searchResultCap {
		capped = capped[:searchResultCap]
	}

	summaries := make([]types.GameSummary, 0, len(capped))
	for _, item := range capped {
		summary := types.GameSummary{
			BGGID: item.ID,
			Name:  firstName(item.Names),
		}
		if item.YearPublished != nil {
			year := item.YearPublished.Value
			summary.YearPublished = &year
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// Normalize maps a raw detail item into the canonical Game entity. Numeric
// fields resolve to nil when the wrapping element is absent; value="0" stays
// zero. A malformed field yields a typed CodeUpstream error so silent data
// loss is distinguishable from genuine absence.
func Normalize(item Item, bggID string) (*types.Game, error) {
	game := &types.Game{
		ID:         uuid.NewString(),
		BGGID:      bggID,
		Name:       primaryName(item.Names),
		Categories: []string{},
		Mechanics:  []string{},
		Publishers: []string{},
		Designers:  []string{},
	}

	if item.YearPublished != nil {
		year := item.YearPublished.Value
		game.YearPublished = &year
	}
	if desc := strings.TrimSpace(item.Description); desc != "" {
		game.Description = &desc
	}
	if img := strings.TrimSpace(item.Image); img != "" {
		game.ImageURL = &img
	}
	if thumb := strings.TrimSpace(item.Thumbnail); thumb != "" {
		game.ThumbnailURL = &thumb
	}

	var err error
	if game.MinPlayers, err = intAttr(item.MinPlayers, "minplayers"); err != nil {
		return nil, err
	}
	if game.MaxPlayers, err = intAttr(item.MaxPlayers, "maxplayers"); err != nil {
		return nil, err
	}
	if game.MinPlaytime, err = intAttr(item.MinPlaytime, "minplaytime"); err != nil {
		return nil, err
	}
	if game.MaxPlaytime, err = intAttr(item.MaxPlaytime, "maxplaytime"); err != nil {
		return nil, err
	}
	if game.MinAge, err = intAttr(item.MinAge, "minage"); err != nil {
		return nil, err
	}

	if item.Statistics != nil {
		ratings := item.Statistics.Ratings
		if game.BGGRating, err = floatAttr(ratings.Average, "average"); err != nil {
			return nil, err
		}
		if game.BGGRatingCount, err = intAttr(ratings.UsersRated, "usersrated"); err != nil {
			return nil, err
		}
	}

	// Bucket the typed link array. Order follows upstream; duplicates pass
	// through untouched.
	for _, link := range item.Links {
		switch link.Type {
		case linkTypeCategory:
			game.Categories = append(game.Categories, link.Value)
		case linkTypeMechanic:
			game.Mechanics = append(game.Mechanics, link.Value)
		case linkTypePublisher:
			game.Publishers = append(game.Publishers, link.Value)
		case linkTypeDesigner:
			game.Designers = append(game.Designers, link.Value)
		}
	}

	return game, nil
}

// primaryName picks the entry tagged "primary", falls back to the first
// entry, and defaults to "Unknown" when no names exist at all.
func primaryName(names []NameEntry) string {
	for _, name := range names {
		if name.Type == primaryNameType {
			return name.Value
		}
	}
	if len(names) > 0 {
		return names[0].Value
	}
	return unknownName
}

func firstName(names []NameEntry) string {
	if len(names) == 0 {
		return unknownName
	}
	return names[0].Value
}

func intAttr(attr *ValueAttr, field string) (*int, error) {
	if attr == nil {
		return nil, nil
	}
	raw := strings.TrimSpace(attr.Value)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "malformed numeric field").
			WithDetails(map[string]any{"field": field, "value": raw})
	}
	return &value, nil
}

func floatAttr(attr *ValueAttr, field string) (*float64, error) {
	if attr == nil {
		return nil, nil
	}
	raw := strings.TrimSpace(attr.Value)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "malformed numeric field").
			WithDetails(map[string]any{"field": field, "value": raw})
	}
	return &value, nil
}

package types

// GameSummary is the lightweight search projection. It is never persisted.
type GameSummary struct {
	BGGID         string  `json:"bgg_id"`
	Name          string  `json:"name"`
	YearPublished *string `json:"year_published,omitempty"`
}

// Game is the canonical catalog entity normalized from the upstream XML API.
// BGGID and Name are always present; every other field is best-effort and
// stays nil/empty when upstream omits it, so a missing value is never
// conflated with zero.
type Game struct {
	ID             string   `json:"id"`
	BGGID          string   `json:"bgg_id"`
	Name           string   `json:"name"`
	YearPublished  *string  `json:"year_published,omitempty"`
	Description    *string  `json:"description,omitempty"`
	ImageURL       *string  `json:"image_url,omitempty"`
	ThumbnailURL   *string  `json:"thumbnail_url,omitempty"`
	MinPlayers     *int     `json:"min_players,omitempty"`
	MaxPlayers     *int     `json:"max_players,omitempty"`
	MinPlaytime    *int     `json:"min_playtime,omitempty"`
	MaxPlaytime    *int     `json:"max_playtime,omitempty"`
	MinAge         *int     `json:"min_age,omitempty"`
	BGGRating      *float64 `json:"bgg_rating,omitempty"`
	BGGRatingCount *int     `json:"bgg_rating_count,omitempty"`
	Categories     []string `json:"categories"`
	Mechanics      []string `json:"mechanics"`
	Publishers     []string `json:"publishers"`
	Designers      []string `json:"designers"`
}

package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/openmeeple/meeplevault-backend/pkg/types"
)

// GameSnapshot stores a copied-at-write-time Game inside a collection entry.
// It is persisted as a JSON document, never as a live reference, so later
// catalog changes do not rewrite stored entries.
type GameSnapshot struct {
	types.Game
}

func (g GameSnapshot) Value() (driver.Value, error) {
	raw, err := json.Marshal(g.Game)
	if err != nil {
		return nil, fmt.Errorf("GameSnapshot: marshal: %w", err)
	}
	return string(raw), nil
}

func (g *GameSnapshot) Scan(src any) error {
	if src == nil {
		*g = GameSnapshot{}
		return nil
	}

	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), &g.Game)
	case []byte:
		return json.Unmarshal(v, &g.Game)
	default:
		return fmt.Errorf("GameSnapshot: unsupported Scan type %T", src)
	}
}

package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringArray persists an ordered list of strings as a JSON array.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		a = StringArray{}
	}
	raw, err := json.Marshal([]string(a))
	if err != nil {
		return nil, fmt.Errorf("StringArray: marshal: %w", err)
	}
	return string(raw), nil
}

func (a *StringArray) Scan(src any) error {
	if src == nil {
		*a = StringArray{}
		return nil
	}

	switch v := src.(type) {
	case string:
		return a.parse([]byte(v))
	case []byte:
		return a.parse(v)
	default:
		return fmt.Errorf("StringArray: unsupported Scan type %T", src)
	}
}

func (a *StringArray) parse(raw []byte) error {
	if len(raw) == 0 {
		*a = StringArray{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("StringArray: unmarshal: %w", err)
	}
	*a = out
	return nil
}

package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
)

// RequireQueryString extracts a trimmed query parameter enforcing a minimum length.
func RequireQueryString(r *http.Request, key string, minLen int) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if len(value) < minLen {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "query parameter too short").
			WithDetails(map[string]any{"field": key, "min_length": minLen})
	}
	return value, nil
}

// ParseQueryBool reads an optional boolean query parameter.
func ParseQueryBool(r *http.Request, key string, defaultVal bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be boolean").
			WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

package bgg

import (
	"encoding/xml"

	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
)

// DecodeItems parses a raw upstream XML document into item records. Repeated
// elements always come back as a slice, singleton or not.
//
// A payload without the expected <items> root yields a CodeUpstream error;
// callers absorb that as "no results" for search and "not found" for detail
// lookups rather than surfacing a server fault.
func DecodeItems(raw []byte) ([]Item, error) {
	if len(raw) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, "empty upstream payload")
	}

	var doc itemsDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode upstream payload")
	}

	if doc.Items == nil {
		return []Item{}, nil
	}
	return doc.Items, nil
}

// DecodeItem returns the single item expected from a detail lookup. Zero items
// is a CodeUpstream error so the caller can map it to not-found.
func DecodeItem(raw []byte) (*Item, error) {
	items, err := DecodeItems(raw)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, "upstream returned no item")
	}
	return &items[0], nil
}

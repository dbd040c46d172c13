package bgg

import "encoding/xml"

// The upstream XML API drops the list wrapper when a collection has exactly
// one element. Decoding straight into slices restores uniform cardinality at
// the boundary, so nothing downstream ever branches on shape.

type itemsDocument struct {
	XMLName xml.Name `xml:"items"`
	Items   []Item   `xml:"item"`
}

// Item is the loosely-typed record for a single upstream entity. Field types
// are not validated here; that is the normalizer's job.
type Item struct {
	ID            string      `xml:"id,attr"`
	Names         []NameEntry `xml:"name"`
	YearPublished *ValueAttr  `xml:"yearpublished"`
	Description   string      `xml:"description"`
	Image         string      `xml:"image"`
	Thumbnail     string      `xml:"thumbnail"`
	MinPlayers    *ValueAttr  `xml:"minplayers"`
	MaxPlayers    *ValueAttr  `xml:"maxplayers"`
	MinPlaytime   *ValueAttr  `xml:"minplaytime"`
	MaxPlaytime   *ValueAttr  `xml:"maxplaytime"`
	MinAge        *ValueAttr  `xml:"minage"`
	Statistics    *Statistics `xml:"statistics"`
	Links         []LinkEntry `xml:"link"`
}

// ValueAttr models the upstream convention of wrapping scalars in an element
// with a single "value" attribute. A nil ValueAttr means the element was
// absent, which is distinct from value="0".
type ValueAttr struct {
	Value string `xml:"value,attr"`
}

// NameEntry is one of possibly several localized names; type is "primary" for
// the canonical one.
type NameEntry struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

// LinkEntry is a typed relation (category, mechanic, publisher, designer, ...).
type LinkEntry struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

// Statistics holds the nested ratings section returned with stats=1.
type Statistics struct {
	Ratings Ratings `xml:"ratings"`
}

type Ratings struct {
	Average    *ValueAttr `xml:"average"`
	UsersRated *ValueAttr `xml:"usersrated"`
}

// link type discriminators used by the normalizer's bucketing pass.
const (
	linkTypeCategory  = "boardgamecategory"
	linkTypeMechanic  = "boardgamemechanic"
	linkTypePublisher = "boardgamepublisher"
	linkTypeDesigner  = "boardgamedesigner"
)

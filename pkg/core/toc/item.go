package toc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OverviewTitle and EndpointsTitle are the fixed headings every tree starts with.
const (
	OverviewTitle  = "Overview"
	EndpointsTitle = "Endpoints"
)

// OverviewSlug is the id and slug of the synthetic overview entry.
const OverviewSlug = "/"

// TypeOverview is the Leaf type of the overview entry.
const TypeOverview = "overview"

// Item is an entry of the table of contents: a [Leaf], a [Group] or a
// [Divider].
type Item interface {
	isItem()
}

// Leaf is a clickable entry.
type Leaf struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Type  string `json:"type"`
	Meta  string `json:"meta"`
}

// Group is a non-clickable section with nested items. Groups nest at most
// one level (tag group, then sub-tag group).
type Group struct {
	Title string `json:"title"`
	Items Items  `json:"items"`
}

// Divider is a non-clickable heading without children.
type Divider struct {
	Title string `json:"title"`
}

func (Leaf) isItem()    {}
func (Group) isItem()   {}
func (Divider) isItem() {}

// Items is a list of entries that decodes back from JSON by shape: an
// object with "items" is a Group, one with "id" or "slug" is a Leaf and
// anything else is a Divider.
type Items []Item

// UnmarshalJSON implements json.Unmarshaler.
func (items *Items) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*items = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Items, 0, len(raw))
	for i, r := range raw {
		it, err := decodeItem(r)
		if err != nil {
			return fmt.Errorf("toc item %d: %w", i, err)
		}
		out = append(out, it)
	}
	*items = out
	return nil
}

func decodeItem(data []byte) (Item, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, err
	}
	_, hasItems := keys["items"]
	_, hasID := keys["id"]
	_, hasSlug := keys["slug"]

	switch {
	case hasItems:
		var g Group
		err := json.Unmarshal(data, &g)
		return g, err
	case hasID || hasSlug:
		var l Leaf
		err := json.Unmarshal(data, &l)
		return l, err
	default:
		var d Divider
		err := json.Unmarshal(data, &d)
		return d, err
	}
}

// Overview returns the synthetic overview entry.
func Overview() Leaf {
	return Leaf{
		ID:    OverviewSlug,
		Slug:  OverviewSlug,
		Title: OverviewTitle,
		Type:  TypeOverview,
	}
}

// FirstSlug returns the slug of the first leaf in depth-first order.
func FirstSlug(items []Item) (string, bool) {
	for _, it := range items {
		switch v := it.(type) {
		case Leaf:
			return v.Slug, true
		case Group:
			if slug, ok := FirstSlug(v.Items); ok {
				return slug, true
			}
		}
	}
	return "", false
}

// Leaves flattens items into their leaves, in depth-first order.
func Leaves(items []Item) []Leaf {
	var out []Leaf
	for _, it := range items {
		switch v := it.(type) {
		case Leaf:
			out = append(out, v)
		case Group:
			out = append(out, Leaves(v.Items)...)
		}
	}
	return out
}

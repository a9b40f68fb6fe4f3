package toc

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/apinav/pkg/core/apidoc"
)

// TagGroup is a set of operations sharing a primary tag.
type TagGroup struct {
	Title string
	Items []apidoc.Node
}

// Grouping is the result of [GroupByTag].
type Grouping struct {
	Groups    []TagGroup
	Ungrouped []apidoc.Node
}

// GroupByTag groups the operations of svc by their primary tag.
//
// Operations without a primary tag (absent or empty) are returned in
// Ungrouped in declaration order. Groups are keyed by the lower-cased tag and
// sorted by the position of that key in the service's declared tags; groups
// the service does not declare keep their insertion order after all declared
// ones.
func GroupByTag(svc apidoc.Service) Grouping {
	declared := make([]string, len(svc.Tags))
	for i, t := range svc.Tags {
		declared[i] = strings.ToLower(t)
	}

	var (
		groups    orderedGroups
		ungrouped []apidoc.Node
	)
	for _, n := range svc.Children {
		if apidoc.KindOf(n) != apidoc.KindOperation {
			continue
		}
		tag := n.PrimaryTag()
		if tag == "" {
			ungrouped = append(ungrouped, n)
			continue
		}

		key := strings.ToLower(tag)
		title := tag
		if i := slices.Index(declared, key); i >= 0 {
			title = svc.Tags[i]
		}
		groups.add(key, title, n)
	}

	rank := func(key string) int {
		if i := slices.Index(declared, key); i >= 0 {
			return i
		}
		return math.MaxInt
	}
	slices.SortStableFunc(groups.entries, func(a, b keyedGroup) int {
		return cmp.Compare(rank(a.key), rank(b.key))
	})

	out := Grouping{Ungrouped: ungrouped}
	for _, e := range groups.entries {
		out.Groups = append(out.Groups, e.group)
	}
	return out
}

// orderedGroups is an insertion-ordered map from grouping key to group.
type orderedGroups struct {
	entries []keyedGroup
	index   map[string]int
}

type keyedGroup struct {
	key   string
	group TagGroup
}

// add appends n to the group for key, creating it with title if needed.
// The title of an existing group is never changed.
func (o *orderedGroups) add(key, title string, n apidoc.Node) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.entries[i].group.Items = append(o.entries[i].group.Items, n)
		return
	}
	o.index[key] = len(o.entries)
	o.entries = append(o.entries, keyedGroup{
		key:   key,
		group: TagGroup{Title: title, Items: []apidoc.Node{n}},
	})
}

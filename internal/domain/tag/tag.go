// Package tag holds the derived tag aggregate of the article index.
package tag

import (
	"cmp"
	"fmt"
	"slices"
)

// Tag is a tag name with the number of articles carrying it (value object).
type Tag struct {
	name  string
	count int
}

// New creates a Tag.
func New(name string, count int) Tag {
	return Tag{name: name, count: count}
}

// Name returns the tag label.
func (t Tag) Name() string { return t.name }

// Count returns the number of distinct articles carrying the tag.
func (t Tag) Count() int { return t.count }

// Order selects how a catalog is sorted for display.
type Order string

const (
	// OrderCatalog keeps the order in which the index first saw each tag.
	OrderCatalog Order = ""
	// OrderCount sorts by descending count, ties by name.
	OrderCount Order = "count"
	// OrderName sorts by name ascending.
	OrderName Order = "name"
)

// ParseOrder validates a sort order name.
func ParseOrder(s string) (Order, error) {
	switch o := Order(s); o {
	case OrderCatalog, OrderCount, OrderName:
		return o, nil
	default:
		return "", fmt.Errorf("unknown tag order %q (want count or name)", s)
	}
}

// Sorted returns a sorted copy of tags. The input is not modified.
func Sorted(tags []Tag, order Order) []Tag {
	out := slices.Clone(tags)
	switch order {
	case OrderCount:
		slices.SortStableFunc(out, func(a, b Tag) int {
			if c := cmp.Compare(b.count, a.count); c != 0 {
				return c
			}
			return cmp.Compare(a.name, b.name)
		})
	case OrderName:
		slices.SortStableFunc(out, func(a, b Tag) int {
			return cmp.Compare(a.name, b.name)
		})
	}
	return out
}

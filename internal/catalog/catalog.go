// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"sort"

	"golang.org/x/exp/slices"
)

// DefaultOrder is the rank assigned to categories that declare none.
// Unranked categories sort after every explicitly ranked one.
const DefaultOrder = 999

type (
	// Tool is one installable item. The Command field is an opaque shell
	// string; archmate never interprets it beyond syntax validation.
	// Tools are immutable once the catalog is built.
	Tool struct {
		Name        string
		Description string
		Command     string
		Tags        []string
		Requires    []string
		Optional    bool
	}

	// Category is a named grouping of tools shown as one menu level.
	// Tools keep their declared order; duplicates are preserved verbatim.
	Category struct {
		ID          string
		Name        string
		Description string
		Order       int
		Icon        string
		Tools       []Tool
	}

	// Catalog is the full in-memory set of categories for one run.
	// It is built once, read-only afterwards, and discarded on exit.
	Catalog struct {
		byID    map[string]*Category
		ordered []*Category
	}
)

// New builds a Catalog from the given categories. The listing order is
// Order rank ascending with ID as the tie-breaker; ties on rank are legal
// and preserved deterministically.
func New(categories []*Category) *Catalog {
	ordered := slices.Clone(categories)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Order != ordered[j].Order {
			return ordered[i].Order < ordered[j].Order
		}
		return ordered[i].ID < ordered[j].ID
	})

	byID := make(map[string]*Category, len(ordered))
	for _, c := range ordered {
		byID[c.ID] = c
	}

	return &Catalog{byID: byID, ordered: ordered}
}

// Category returns the category with the given ID.
func (c *Catalog) Category(id string) (*Category, bool) {
	cat, ok := c.byID[id]
	return cat, ok
}

// Categories returns all categories in display order.
func (c *Catalog) Categories() []*Category {
	return slices.Clone(c.ordered)
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// ToolCount returns the total number of tools across all categories.
func (c *Catalog) ToolCount() int {
	n := 0
	for _, cat := range c.ordered {
		n += len(cat.Tools)
	}
	return n
}

// FindTool returns the first tool with the given name inside a category.
// Tool names are only meaningful within their category.
func (c *Catalog) FindTool(categoryID, name string) (Tool, bool) {
	cat, ok := c.byID[categoryID]
	if !ok {
		return Tool{}, false
	}
	for _, tool := range cat.Tools {
		if tool.Name == name {
			return tool, true
		}
	}
	return Tool{}, false
}

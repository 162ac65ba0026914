package cberrorsx

import (
	"golang.org/x/exp/slices"
)

var registry = map[string]*Category{
	commonCategory.name:        commonCategory,
	queryCategory.name:         queryCategory,
	viewCategory.name:          viewCategory,
	transactionOpCategory.name: transactionOpCategory,
}

// Lookup returns the category registered under name.
func Lookup(name string) (*Category, bool) {
	category, ok := registry[name]
	return category, ok
}

// Categories returns every registered category ordered by name.
func Categories() []*Category {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)

	categories := make([]*Category, len(names))
	for i, name := range names {
		categories[i] = registry[name]
	}
	return categories
}

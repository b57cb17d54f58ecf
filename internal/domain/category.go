package domain

import (
	"sort"
	"strings"
)

// BuildCategoryTree partitions categories into parents and a children map
// keyed by parent ID. Both the parent list and every child list are sorted
// lexicographically, except catch-all categories (any name containing "other",
// case-insensitive) always sort after their siblings.
func BuildCategoryTree(categories []Category) (parents []Category, children map[string][]Category) {
	children = make(map[string][]Category)

	for _, cat := range categories {
		if cat.ParentID == "" {
			parents = append(parents, cat)
		} else {
			children[cat.ParentID] = append(children[cat.ParentID], cat)
		}
	}

	sortOtherLast(parents)
	for _, siblings := range children {
		sortOtherLast(siblings)
	}

	return parents, children
}

func sortOtherLast(categories []Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		iOther := isOther(categories[i].Name)
		jOther := isOther(categories[j].Name)
		if iOther != jOther {
			return !iOther
		}
		return categories[i].Name < categories[j].Name
	})
}

func isOther(name string) bool {
	return strings.Contains(strings.ToLower(name), "other")
}

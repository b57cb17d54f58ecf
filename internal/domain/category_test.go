package domain

import (
	"testing"
)

func TestBuildCategoryTree_OtherLast(t *testing.T) {
	categories := []Category{
		{ID: "c4", Name: "Other Expenses"},
		{ID: "c1", Name: "Food"},
		{ID: "c3", Name: "Housing"},
		{ID: "c2", Name: "OTHER stuff"},
		{ID: "c1-1", Name: "Restaurants", ParentID: "c1"},
		{ID: "c1-2", Name: "other takeaway", ParentID: "c1"},
		{ID: "c1-3", Name: "Groceries", ParentID: "c1"},
	}

	parents, children := BuildCategoryTree(categories)

	wantParents := []string{"Food", "Housing", "OTHER stuff", "Other Expenses"}
	if len(parents) != len(wantParents) {
		t.Fatalf("Expected %d parents, got %d", len(wantParents), len(parents))
	}
	for i, want := range wantParents {
		if parents[i].Name != want {
			t.Errorf("parents[%d] = %q, want %q", i, parents[i].Name, want)
		}
	}

	wantChildren := []string{"Groceries", "Restaurants", "other takeaway"}
	got := children["c1"]
	if len(got) != len(wantChildren) {
		t.Fatalf("Expected %d children of c1, got %d", len(wantChildren), len(got))
	}
	for i, want := range wantChildren {
		if got[i].Name != want {
			t.Errorf("children[c1][%d] = %q, want %q", i, got[i].Name, want)
		}
	}
}

func TestBuildCategoryTree_Empty(t *testing.T) {
	parents, children := BuildCategoryTree(nil)
	if len(parents) != 0 {
		t.Errorf("Expected no parents, got %d", len(parents))
	}
	if len(children) != 0 {
		t.Errorf("Expected no children, got %d", len(children))
	}
}

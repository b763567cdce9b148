package domain

import (
	"testing"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
)

func TestFieldSetKeepsID(t *testing.T) {
	t.Parallel()

	record := partRecord(storage.Part{ID: 7, Name: "Resistor", IPN: "R-1"})
	projected := newFieldSet([]string{"name"}).apply(record)
	if len(projected) != 2 {
		t.Fatalf("projected keys = %d, want 2", len(projected))
	}
	if projected["id"] != int64(7) {
		t.Fatalf("id = %v, want 7", projected["id"])
	}
	if projected["name"] != "Resistor" {
		t.Fatalf("name = %v, want Resistor", projected["name"])
	}
	if _, ok := projected["ipn"]; ok {
		t.Fatal("ipn should have been dropped")
	}
}

func TestFieldSetNilKeepsEverything(t *testing.T) {
	t.Parallel()

	record := partRecord(storage.Part{ID: 1, Name: "Bolt"})
	projected := newFieldSet(nil).apply(record)
	if len(projected) != len(record) {
		t.Fatalf("projected keys = %d, want %d", len(projected), len(record))
	}
}

func TestFieldSetIgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	record := partRecord(storage.Part{ID: 3})
	projected := newFieldSet([]string{"does_not_exist"}).apply(record)
	if len(projected) != 1 {
		t.Fatalf("projected keys = %d, want only id", len(projected))
	}
}

func TestBuildTreeNestsChildren(t *testing.T) {
	t.Parallel()

	one := int64(1)
	sources := []treeSource{
		{id: 1, name: "Electronics"},
		{id: 2, name: "Passives", parentID: &one},
		{id: 3, name: "Hardware"},
	}
	roots, err := buildTree(sources, nil)
	if err != nil {
		t.Fatalf("build tree: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("roots = %d, want 2", len(roots))
	}
	nested, ok := roots[0]["children"].([]map[string]any)
	if !ok || len(nested) != 1 || nested[0]["name"] != "Passives" {
		t.Fatalf("children = %+v, want Passives under Electronics", roots[0]["children"])
	}

	scoped, err := buildTree(sources, &one)
	if err != nil {
		t.Fatalf("build subtree: %v", err)
	}
	if len(scoped) != 1 || scoped[0]["id"] != int64(1) {
		t.Fatalf("subtree = %+v, want rooted at 1", scoped)
	}

	missing := int64(9)
	if _, err := buildTree(sources, &missing); err == nil {
		t.Fatal("expected missing root error")
	}
}
